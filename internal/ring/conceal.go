// internal/ring/conceal.go

package ring

// RevealAll in a reveal set keeps every cell visible.
const RevealAll = -1

// Conceal blanks every cell of g whose 1-based flat position is not listed
// in reveal. Positions outside the grid are ignored.
func Conceal(g Grid, reveal []int) (Grid, error) {
	flat, err := Flatten(g)
	if err != nil {
		return nil, err
	}
	keep := make(map[int]bool, len(reveal))
	all := false
	for _, i := range reveal {
		if i == RevealAll {
			all = true
		}
		keep[i] = true
	}
	out := make([]string, len(flat))
	for i, cell := range flat {
		if all || keep[i+1] {
			out[i] = cell
		} else {
			out[i] = Blank
		}
	}
	return Inflate(out)
}
