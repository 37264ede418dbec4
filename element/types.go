package element

// Type is the wire discriminator of an element variant.
type Type string

const (
	TypeQR    Type = "qrcode"
	TypeText  Type = "text"
	TypeImage Type = "image"
	TypeRect  Type = "rect"
	TypeLine  Type = "line"
)

// Types lists every variant in a stable order.
func Types() []Type {
	return []Type{TypeQR, TypeText, TypeImage, TypeRect, TypeLine}
}

// Valid reports whether t names a known variant.
func (t Type) Valid() bool {
	switch t {
	case TypeQR, TypeText, TypeImage, TypeRect, TypeLine:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// ECCLevel is the QR error correction level.
type ECCLevel string

const (
	ECCLow      ECCLevel = "L"
	ECCMedium   ECCLevel = "M"
	ECCQuartile ECCLevel = "Q"
	ECCHigh     ECCLevel = "H"
)

func (l ECCLevel) Valid() bool {
	switch l {
	case ECCLow, ECCMedium, ECCQuartile, ECCHigh:
		return true
	}
	return false
}

// Overflow controls how text that does not fit its box is handled.
type Overflow string

const (
	OverflowTruncate Overflow = "truncate"
	OverflowWrap     Overflow = "wrap"
	OverflowScale    Overflow = "scale"
)

func (o Overflow) Valid() bool {
	switch o {
	case OverflowTruncate, OverflowWrap, OverflowScale:
		return true
	}
	return false
}

// Fit is how an image is fitted into its box.
type Fit string

const (
	FitContain Fit = "contain"
	FitCover   Fit = "cover"
	FitStretch Fit = "stretch"
)

func (f Fit) Valid() bool {
	switch f {
	case FitContain, FitCover, FitStretch:
		return true
	}
	return false
}
