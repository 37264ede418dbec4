package element

// Patch is a partial update. Nil fields are left unchanged; fields that do not
// apply to the target variant are ignored.
type Patch struct {
	X        *float64
	Y        *float64
	Width    *float64
	Height   *float64
	Rotation *float64

	DataBinding *string

	// QR
	ECCLevel  *ECCLevel
	QuietZone *int

	// Text
	Text           *string
	FontFamily     *string
	FontSize       *float64
	FontWeight     *string
	MaxLength      *int
	ClearMaxLength bool
	Overflow       *Overflow

	// Image
	AspectRatio *Fit
	AssetID     *string
	AssetName   *string
	Src         *string

	// Text fill and shape paint
	Fill        *string
	Stroke      *string
	StrokeWidth *float64
}

// Ptr returns a pointer to v, for building patches inline.
func Ptr[T any](v T) *T {
	return &v
}
