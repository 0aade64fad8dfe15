package diag

// Ranger wraps the Range method.
type Ranger interface {
	Range() Ranging
}

// Ranging is the byte range [From, To) of some text. Types embedding Ranging
// implement Ranger.
type Ranging struct {
	From int
	To   int
}

// Range returns r itself.
func (r Ranging) Range() Ranging { return r }

// PointRanging returns an empty Ranging at p.
func PointRanging(p int) Ranging { return Ranging{p, p} }

// MixedRanging returns a Ranging spanning from the start of a to the end of b.
func MixedRanging(a, b Ranger) Ranging { return Ranging{a.Range().From, b.Range().To} }
