package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"stickerpad/element"
)

const (
	FormatVersion = "1.0"
	UnitMM        = "mm"
)

var ErrMalformedTemplate = errors.New("malformed template")

type template struct {
	Version  string       `json:"version"`
	PageSize pageSize     `json:"pageSize"`
	Objects  []objectJSON `json:"objects"`
}

type pageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Unit   string  `json:"unit"`
}

type objectJSON struct {
	Type       string          `json:"type"`
	ID         string          `json:"id"`
	Left       float64         `json:"left"`
	Top        float64         `json:"top"`
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	ScaleX     float64         `json:"scaleX"`
	ScaleY     float64         `json:"scaleY"`
	Angle      float64         `json:"angle"`
	Properties json.RawMessage `json:"properties,omitempty"`
}

type qrProps struct {
	DataSource string           `json:"dataSource,omitempty"`
	ECCLevel   element.ECCLevel `json:"eccLevel"`
	QuietZone  int              `json:"quietZone"`
}

type textProps struct {
	DataSource string           `json:"dataSource,omitempty"`
	Text       string           `json:"text"`
	FontFamily string           `json:"fontFamily"`
	FontSize   float64          `json:"fontSize"`
	FontWeight string           `json:"fontWeight"`
	Fill       string           `json:"fill"`
	MaxLength  *int             `json:"maxLength"`
	Overflow   element.Overflow `json:"overflow"`
}

type imageProps struct {
	DataSource  string      `json:"dataSource,omitempty"`
	AspectRatio element.Fit `json:"aspectRatio"`
	AssetID     string      `json:"assetId,omitempty"`
	AssetName   string      `json:"assetName,omitempty"`
	Src         string      `json:"src"`
}

type paintProps struct {
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"strokeWidth"`
}

// Warning describes an object that was skipped or repaired during import.
type Warning struct {
	Index   int
	ID      string
	Type    string
	Message string
}

func (w Warning) String() string {
	if w.Index < 0 {
		return w.Message
	}
	return fmt.Sprintf("object %d (type %q, id %q): %s", w.Index, w.Type, w.ID, w.Message)
}

// ToJSON encodes the document in the versioned template format. Positions are
// relative to the page origin in millimeters.
func (d *Document) ToJSON() ([]byte, error) {
	t := template{
		Version:  FormatVersion,
		PageSize: pageSize{Width: d.PageWidth, Height: d.PageHeight, Unit: UnitMM},
		Objects: lo.Map(d.elements, func(el element.Element, _ int) objectJSON {
			return encodeElement(el)
		}),
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encoding template: %w", err)
	}
	return data, nil
}

func (d *Document) MarshalJSON() ([]byte, error) {
	return d.ToJSON()
}

// EncodeElement serializes a single element as a template object.
func EncodeElement(el element.Element) ([]byte, error) {
	data, err := json.Marshal(encodeElement(el))
	if err != nil {
		return nil, fmt.Errorf("encoding element: %w", err)
	}
	return data, nil
}

// encoder turns each variant into its wire properties.
type encoder struct {
	props any
}

func (e *encoder) VisitQR(q *element.QR) {
	e.props = qrProps{DataSource: q.DataBinding, ECCLevel: q.ECCLevel, QuietZone: q.QuietZone}
}

func (e *encoder) VisitText(t *element.Text) {
	e.props = textProps{
		DataSource: t.DataBinding,
		Text:       t.Text,
		FontFamily: t.FontFamily,
		FontSize:   t.FontSize,
		FontWeight: t.FontWeight,
		Fill:       t.Fill,
		MaxLength:  t.MaxLength,
		Overflow:   t.Overflow,
	}
}

func (e *encoder) VisitImage(i *element.Image) {
	e.props = imageProps{
		DataSource:  i.DataBinding,
		AspectRatio: i.AspectRatio,
		AssetID:     i.AssetID,
		AssetName:   i.AssetName,
		Src:         i.Src,
	}
}

func (e *encoder) VisitRect(r *element.Rect) {
	e.props = paintProps(r.Paint)
}

func (e *encoder) VisitLine(l *element.Line) {
	e.props = paintProps(l.Paint)
}

func encodeElement(el element.Element) objectJSON {
	c := el.Base()
	enc := &encoder{}
	el.Accept(enc)
	// props are plain structs; marshalling cannot fail
	props, _ := json.Marshal(enc.props)
	return objectJSON{
		Type:       string(el.Type()),
		ID:         c.ID,
		Left:       c.X,
		Top:        c.Y,
		Width:      c.BaseWidth,
		Height:     c.BaseHeight,
		ScaleX:     c.ScaleX,
		ScaleY:     c.ScaleY,
		Angle:      c.Rotation,
		Properties: props,
	}
}

// Option configures template decoding.
type Option func(*decodeOptions)

type decodeOptions struct {
	logger *slog.Logger
}

// WithLogger logs every import warning at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(o *decodeOptions) {
		o.logger = l
	}
}

// FromJSON parses a template. Malformed JSON or an unusable page size returns
// an error wrapping ErrMalformedTemplate. Objects of unknown type or with
// unusable geometry are skipped and reported as warnings.
func FromJSON(data []byte, opts ...Option) (*Document, []Warning, error) {
	o := decodeOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	var t template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedTemplate, err)
	}
	if t.PageSize.Width <= 0 || t.PageSize.Height <= 0 {
		return nil, nil, fmt.Errorf("%w: page size %vx%v", ErrMalformedTemplate, t.PageSize.Width, t.PageSize.Height)
	}

	var warnings []Warning
	warn := func(w Warning) {
		warnings = append(warnings, w)
		if o.logger != nil {
			o.logger.LogAttrs(context.Background(), slog.LevelWarn, "template import",
				slog.Int("index", w.Index), slog.String("id", w.ID),
				slog.String("type", w.Type), slog.String("reason", w.Message))
		}
	}

	if t.Version != FormatVersion {
		warn(Warning{Index: -1, Message: fmt.Sprintf("unsupported template version %q, reading as %s", t.Version, FormatVersion)})
	}
	if t.PageSize.Unit != "" && t.PageSize.Unit != UnitMM {
		warn(Warning{Index: -1, Message: fmt.Sprintf("page unit %q ignored, using %s", t.PageSize.Unit, UnitMM)})
	}

	doc := New(t.PageSize.Width, t.PageSize.Height)
	for i, obj := range t.Objects {
		el, problems, err := decodeElement(obj)
		for _, p := range problems {
			warn(Warning{Index: i, ID: obj.ID, Type: obj.Type, Message: p})
		}
		if err != nil {
			warn(Warning{Index: i, ID: obj.ID, Type: obj.Type, Message: err.Error() + ", skipped"})
			continue
		}
		c := el.Base()
		if c.ID == "" || doc.Index(c.ID) >= 0 {
			c.ID = element.NewID()
			warn(Warning{Index: i, ID: obj.ID, Type: obj.Type, Message: "missing or duplicate id, assigned " + c.ID})
		}
		doc.elements = append(doc.elements, el)
	}
	return doc, warnings, nil
}

// DecodeElement parses a single template object, as produced by EncodeElement.
func DecodeElement(data []byte) (element.Element, error) {
	var obj objectJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTemplate, err)
	}
	el, _, err := decodeElement(obj)
	return el, err
}

func decodeElement(obj objectJSON) (element.Element, []string, error) {
	el, err := element.New(element.Type(obj.Type), obj.Left, obj.Top)
	if err != nil {
		return nil, nil, err
	}

	c := el.Base()
	c.ID = obj.ID
	c.DataBinding = ""
	c.BaseWidth = obj.Width
	c.BaseHeight = obj.Height
	c.ScaleX = lo.Ternary(obj.ScaleX == 0, 1, obj.ScaleX)
	c.ScaleY = lo.Ternary(obj.ScaleY == 0, 1, obj.ScaleY)
	c.Rotation = obj.Angle
	if !c.Valid() {
		return nil, nil, fmt.Errorf("invalid geometry %vx%v at scale %vx%v", obj.Width, obj.Height, c.ScaleX, c.ScaleY)
	}

	props := obj.Properties
	if len(props) == 0 || string(props) == "null" {
		props = []byte("{}")
	}

	d := &decoder{props: props}
	el.Accept(d)
	if d.err != nil {
		return nil, nil, fmt.Errorf("properties: %v", d.err)
	}
	return el, d.problems, nil
}

// decoder fills each variant from its wire properties, repairing values it
// cannot use and noting them in problems.
type decoder struct {
	props    []byte
	problems []string
	err      error
}

func (d *decoder) VisitQR(v *element.QR) {
	p := qrProps{ECCLevel: v.ECCLevel, QuietZone: v.QuietZone}
	if d.err = json.Unmarshal(d.props, &p); d.err != nil {
		return
	}
	v.DataBinding = p.DataSource
	v.ECCLevel, d.problems = pick(p.ECCLevel, v.ECCLevel, "eccLevel", d.problems)
	if p.QuietZone < 0 {
		d.problems = append(d.problems, fmt.Sprintf("quietZone %d below zero, using %d", p.QuietZone, v.QuietZone))
	} else {
		v.QuietZone = p.QuietZone
	}
}

func (d *decoder) VisitText(v *element.Text) {
	p := textProps{
		Text:       v.Text,
		FontFamily: v.FontFamily,
		FontSize:   v.FontSize,
		FontWeight: v.FontWeight,
		Fill:       v.Fill,
		Overflow:   v.Overflow,
	}
	if d.err = json.Unmarshal(d.props, &p); d.err != nil {
		return
	}
	v.DataBinding = p.DataSource
	v.Text = p.Text
	v.FontFamily = p.FontFamily
	v.FontWeight = p.FontWeight
	v.Fill = p.Fill
	if p.MaxLength != nil && *p.MaxLength < 0 {
		d.problems = append(d.problems, fmt.Sprintf("maxLength %d below zero, dropped", *p.MaxLength))
	} else {
		v.MaxLength = p.MaxLength
	}
	if p.FontSize > 0 {
		v.FontSize = p.FontSize
	} else {
		d.problems = append(d.problems, fmt.Sprintf("fontSize %v not positive, using %v", p.FontSize, v.FontSize))
	}
	v.Overflow, d.problems = pick(p.Overflow, v.Overflow, "overflow", d.problems)
}

func (d *decoder) VisitImage(v *element.Image) {
	p := imageProps{AspectRatio: v.AspectRatio}
	if d.err = json.Unmarshal(d.props, &p); d.err != nil {
		return
	}
	v.DataBinding = p.DataSource
	v.AssetID = p.AssetID
	v.AssetName = p.AssetName
	v.Src = p.Src
	v.AspectRatio, d.problems = pick(p.AspectRatio, v.AspectRatio, "aspectRatio", d.problems)
}

func (d *decoder) VisitRect(v *element.Rect) {
	v.Paint, d.err = d.paint(v.Paint)
}

func (d *decoder) VisitLine(v *element.Line) {
	v.Paint, d.err = d.paint(v.Paint)
}

func (d *decoder) paint(defaults element.Paint) (element.Paint, error) {
	p := paintProps(defaults)
	if err := json.Unmarshal(d.props, &p); err != nil {
		return defaults, err
	}
	return element.Paint(p), nil
}

type enum interface {
	~string
	Valid() bool
}

func pick[T enum](got, fallback T, field string, problems []string) (T, []string) {
	if got.Valid() {
		return got, problems
	}
	return fallback, append(problems, fmt.Sprintf("%s %q not recognized, using %q", field, string(got), string(fallback)))
}
