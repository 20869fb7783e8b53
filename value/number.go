package value

import (
	"strconv"

	"go-rytm/rytmerr"
)

// Number is an Int or a Float parameter
type Number struct {
	float bool
	i     int64
	f     float64
}

func IntNumber(v int64) Number     { return Number{i: v} }
func FloatNumber(v float64) Number { return Number{float: true, f: v} }

func (n Number) IsFloat() bool { return n.float }

// Int truncates a float toward zero
func (n Number) Int() int64 {
	if n.float {
		return int64(n.f)
	}
	return n.i
}

func (n Number) Float() float64 {
	if n.float {
		return n.f
	}
	return float64(n.i)
}

// Bool01 reads the number as a boolean flag, rejecting anything but 0 and 1
func (n Number) Bool01(name string) (bool, error) {
	if n.float && n.f != float64(int64(n.f)) {
		return false, rytmerr.SetRange("%s must be 0 or 1. Got %s.", name, n)
	}
	switch n.Int() {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, rytmerr.SetRange("%s must be 0 or 1. Got %s.", name, n)
}

func (n Number) String() string {
	if n.float {
		return strconv.FormatFloat(n.f, 'f', -1, 64)
	}
	return strconv.FormatInt(n.i, 10)
}
