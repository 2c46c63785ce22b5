package factors

import "github.com/wonny/screener/internal/contracts"

// AltmanZScore combines the five Altman (1968) components into the
// classic bankruptcy-risk score (higher is safer):
//
//	Z = 1.2*A + 1.4*B + 3.3*C + 0.6*D + 1.0*E
//
// where A = working capital / total assets, B = retained earnings /
// total assets, C = EBIT / total assets, D = market cap / total
// liabilities, E = sales / total assets. Null when any component is
// null.
func AltmanZScore(a, b, c, d, e contracts.Column) contracts.Column {
	out := contracts.NewColumn(len(a))
	for i := range a {
		av := cell(a, i)
		bv := cell(b, i)
		cv := cell(c, i)
		dv := cell(d, i)
		ev := cell(e, i)
		if av == nil || bv == nil || cv == nil || dv == nil || ev == nil {
			continue
		}
		z := 1.2**av + 1.4**bv + 3.3**cv + 0.6**dv + 1.0**ev
		out[i] = &z
	}
	return out
}

// BeneishMScore combines the eight Beneish (1999) indices into the
// earnings-manipulation score (above -1.78 flags likely manipulation):
//
//	M = -4.84 + 0.92*DSRI + 0.528*GMI + 0.404*AQI + 0.892*SGI
//	    + 0.115*DEPI - 0.172*SGAI + 4.679*TATA - 0.327*LVGI
//
// Null when any index is null.
func BeneishMScore(dsri, gmi, aqi, sgi, depi, sgai, tata, lvgi contracts.Column) contracts.Column {
	out := contracts.NewColumn(len(dsri))
	for i := range dsri {
		vs := [8]*float64{
			cell(dsri, i), cell(gmi, i), cell(aqi, i), cell(sgi, i),
			cell(depi, i), cell(sgai, i), cell(tata, i), cell(lvgi, i),
		}
		null := false
		for _, v := range vs {
			if v == nil {
				null = true
				break
			}
		}
		if null {
			continue
		}
		m := -4.84 +
			0.92**vs[0] +
			0.528**vs[1] +
			0.404**vs[2] +
			0.892**vs[3] +
			0.115**vs[4] -
			0.172**vs[5] +
			4.679**vs[6] -
			0.327**vs[7]
		out[i] = &m
	}
	return out
}
