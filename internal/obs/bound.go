package obs

import "obs-mapper/internal/form"

// Bound is the value bound to a control: an *Obs or a *List.
type Bound interface {
	Path() form.Path
	Namespace() string
	IsVoided() bool
	Payload() Payload

	sealed()
}

// Void voids any bound value.
func Void(b Bound) Bound {
	switch b := b.(type) {
	case *Obs:
		return b.Void()
	case *List:
		return b.Void()
	default:
		return b
	}
}

// Readdress returns b moved to path, with members moved along.
func Readdress(b Bound, path form.Path) Bound {
	switch b := b.(type) {
	case *Obs:
		return b.Readdress(path)
	case *List:
		return b.Readdress(path)
	default:
		return b
	}
}

func isVoided(b Bound) bool {
	return b.IsVoided()
}
