package musys

// Registers holds the 26 MUSYS variables A..Z and the EXP accumulator.
// Grounded on register.go's Registers struct: plain fixed fields plus an
// Init method, generalized from 6 named 6502 registers to 26 lettered
// variables and EXP.
type Registers struct {
	vars [26]int
	EXP  int
}

// Init resets every variable and EXP to 0, their uninitialized value per
// spec.md §3.
func (r *Registers) Init() {
	for i := range r.vars {
		r.vars[i] = 0
	}
	r.EXP = 0
}

// Get returns the value of variable letter ('A'..'Z'). An unset variable
// reads as 0.
func (r *Registers) Get(letter byte) int {
	return r.vars[letter-'A']
}

// Set stores v into variable letter ('A'..'Z').
func (r *Registers) Set(letter byte, v int) {
	r.vars[letter-'A'] = v
}
