package document

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stickerpad/element"
)

func newElement(t *testing.T, typ element.Type, x, y float64) element.Element {
	t.Helper()
	el, err := element.New(typ, x, y)
	require.NoError(t, err)
	return el
}

func sampleDocument(t *testing.T) *Document {
	t.Helper()
	doc := New(100, 50)
	for i, typ := range element.Types() {
		el := newElement(t, typ, float64(i)*7.3, float64(i)*1.1)
		require.NoError(t, doc.Add(el))
	}
	txt := doc.At(1).(*element.Text)
	element.Apply(txt, element.Patch{MaxLength: element.Ptr(8), Text: element.Ptr("Serial \"#\" ü"), DataBinding: element.Ptr("device.Name")})
	img := doc.At(2).(*element.Image)
	element.Apply(img, element.Patch{AssetID: element.Ptr("a-1"), AssetName: element.Ptr("logo.png"), Width: element.Ptr(12.345678)})
	element.Apply(doc.At(0), element.Patch{Rotation: element.Ptr(33.3), Height: element.Ptr(1.0 / 3)})
	return doc
}

func TestAddRemoveMove(t *testing.T) {
	doc := New(100, 50)
	a := newElement(t, element.TypeRect, 0, 0)
	b := newElement(t, element.TypeLine, 0, 0)
	c := newElement(t, element.TypeText, 0, 0)
	require.NoError(t, doc.Add(a))
	require.NoError(t, doc.Add(b))
	require.NoError(t, doc.Add(c))

	assert.ErrorIs(t, doc.Add(a), ErrDuplicateID)
	assert.Equal(t, 3, doc.Len())
	assert.Equal(t, 1, doc.Index(b.Base().ID))
	assert.Equal(t, -1, doc.Index("missing"))
	assert.Nil(t, doc.Get("missing"))
	assert.Nil(t, doc.At(7))

	assert.True(t, doc.Move(a.Base().ID, 99))
	assert.Equal(t, 2, doc.Index(a.Base().ID))
	assert.False(t, doc.Move(a.Base().ID, 2))
	assert.True(t, doc.Move(a.Base().ID, -4))
	assert.Equal(t, 0, doc.Index(a.Base().ID))
	assert.False(t, doc.Move("missing", 0))

	removed, ok := doc.Remove(b.Base().ID)
	assert.True(t, ok)
	assert.Same(t, b, removed)
	_, ok = doc.Remove(b.Base().ID)
	assert.False(t, ok)

	els := doc.Elements()
	els[0] = nil
	assert.NotNil(t, doc.At(0))

	doc.Clear()
	assert.Equal(t, 0, doc.Len())
}

func TestBounds(t *testing.T) {
	doc := New(100, 50)
	_, _, _, _, ok := doc.Bounds()
	assert.False(t, ok)

	require.NoError(t, doc.Add(newElement(t, element.TypeRect, 10, 5)))
	require.NoError(t, doc.Add(newElement(t, element.TypeQR, -2, 20)))
	minX, minY, maxX, maxY, ok := doc.Bounds()
	assert.True(t, ok)
	assert.Equal(t, -2.0, minX)
	assert.Equal(t, 5.0, minY)
	assert.Equal(t, 40.0, maxX)
	assert.Equal(t, 40.0, maxY)
}

func TestToJSONShape(t *testing.T) {
	doc := New(100, 50)
	qr := newElement(t, element.TypeQR, 5, 6)
	require.NoError(t, doc.Add(qr))

	data, err := doc.ToJSON()
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "1.0", raw["version"])
	assert.Equal(t, map[string]any{"width": 100.0, "height": 50.0, "unit": "mm"}, raw["pageSize"])

	objects := raw["objects"].([]any)
	require.Len(t, objects, 1)
	obj := objects[0].(map[string]any)
	assert.Equal(t, "qrcode", obj["type"])
	assert.Equal(t, qr.Base().ID, obj["id"])
	assert.Equal(t, 5.0, obj["left"])
	assert.Equal(t, 6.0, obj["top"])
	assert.Equal(t, 20.0, obj["width"])
	assert.Equal(t, 1.0, obj["scaleX"])
	assert.Equal(t, 0.0, obj["angle"])
	assert.Equal(t, map[string]any{"dataSource": "device.Serial", "eccLevel": "Q", "quietZone": 2.0}, obj["properties"])
}

func TestSerializationIdempotent(t *testing.T) {
	doc := sampleDocument(t)

	first, err := doc.ToJSON()
	require.NoError(t, err)
	back, warnings, err := FromJSON(first)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	second, err := back.ToJSON()
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
	assert.Equal(t, doc.Len(), back.Len())
	for i, el := range doc.Elements() {
		assert.Equal(t, el, back.At(i))
	}
}

func TestEmptyDocumentRoundTrip(t *testing.T) {
	data, err := New(60, 40).ToJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"version":"1.0","pageSize":{"width":60,"height":40,"unit":"mm"},"objects":[]}`, string(data))

	doc, warnings, err := FromJSON(data)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 0, doc.Len())
}

func TestFromJSONSkipsUnknownType(t *testing.T) {
	input := `{
		"version": "1.0",
		"pageSize": {"width": 100, "height": 50, "unit": "mm"},
		"objects": [
			{"type": "qrcode", "id": "qr-1", "left": 1, "top": 2, "width": 20, "height": 20, "scaleX": 1, "scaleY": 1, "angle": 0,
			 "properties": {"dataSource": "device.Serial", "eccLevel": "H", "quietZone": 4}},
			{"type": "bogus-type", "id": "b-1", "left": 0, "top": 0, "width": 5, "height": 5, "scaleX": 1, "scaleY": 1, "angle": 0}
		]
	}`

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	doc, warnings, err := FromJSON([]byte(input), WithLogger(logger))
	require.NoError(t, err)
	require.Equal(t, 1, doc.Len())

	qr, ok := doc.At(0).(*element.QR)
	require.True(t, ok)
	assert.Equal(t, "qr-1", qr.ID)
	assert.Equal(t, element.ECCHigh, qr.ECCLevel)
	assert.Equal(t, 4, qr.QuietZone)

	require.Len(t, warnings, 1)
	assert.Equal(t, 1, warnings[0].Index)
	assert.Equal(t, "bogus-type", warnings[0].Type)
	assert.Contains(t, warnings[0].String(), "unknown element type")
	assert.Contains(t, logs.String(), "level=WARN")
	assert.Contains(t, logs.String(), "bogus-type")
}

func TestFromJSONMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", `{"version": "1.0", "objects": [`},
		{"wrong type", `{"version": "1.0", "pageSize": {"width": "wide", "height": 5}}`},
		{"missing page", `{"version": "1.0", "objects": []}`},
		{"negative page", `{"version": "1.0", "pageSize": {"width": -1, "height": 5}, "objects": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, _, err := FromJSON([]byte(tt.input))
			assert.ErrorIs(t, err, ErrMalformedTemplate)
			assert.Nil(t, doc)
		})
	}
}

func TestFromJSONRepairs(t *testing.T) {
	input := `{
		"version": "0.9",
		"pageSize": {"width": 80, "height": 30, "unit": "in"},
		"objects": [
			{"type": "qrcode", "id": "dup", "width": 20, "height": 20, "properties": {"eccLevel": "X"}},
			{"type": "text", "id": "dup", "width": 40, "height": 10, "properties": {"text": "hi", "overflow": "explode", "maxLength": null}},
			{"type": "image", "id": "", "width": 30, "height": 30, "properties": null},
			{"type": "rect", "id": "flat", "width": 0, "height": 10},
			{"type": "line", "id": "bad-props", "width": 10, "height": 1, "properties": {"strokeWidth": "thick"}}
		]
	}`
	doc, warnings, err := FromJSON([]byte(input))
	require.NoError(t, err)
	require.Equal(t, 3, doc.Len())

	qr := doc.At(0).(*element.QR)
	assert.Equal(t, "dup", qr.ID)
	assert.Equal(t, element.ECCQuartile, qr.ECCLevel)
	assert.Equal(t, 2, qr.QuietZone)
	assert.Equal(t, 1.0, qr.ScaleX)
	assert.Empty(t, qr.DataBinding)

	txt := doc.At(1).(*element.Text)
	assert.NotEqual(t, "dup", txt.ID)
	assert.NotEmpty(t, txt.ID)
	assert.Equal(t, "hi", txt.Text)
	assert.Equal(t, element.OverflowTruncate, txt.Overflow)
	assert.Nil(t, txt.MaxLength)

	img := doc.At(2).(*element.Image)
	assert.NotEmpty(t, img.ID)
	assert.Equal(t, element.FitContain, img.AspectRatio)

	var messages []string
	for _, w := range warnings {
		messages = append(messages, w.String())
	}
	joined := strings.Join(messages, "\n")
	assert.Contains(t, joined, "unsupported template version")
	assert.Contains(t, joined, `page unit "in"`)
	assert.Contains(t, joined, `eccLevel "X"`)
	assert.Contains(t, joined, `overflow "explode"`)
	assert.Contains(t, joined, "missing or duplicate id")
	assert.Contains(t, joined, "invalid geometry")
	assert.Contains(t, joined, "properties:")
}

func TestFromJSONDropsNegativeMaxLength(t *testing.T) {
	input := `{"version":"1.0","pageSize":{"width":100,"height":50,"unit":"mm"},"objects":[
		{"type":"text","id":"t-1","left":1,"top":1,"width":40,"height":10,"scaleX":1,"scaleY":1,"angle":0,
		 "properties":{"text":"SN-0001","maxLength":-1,"overflow":"truncate"}}
	]}`
	doc, warnings, err := FromJSON([]byte(input))
	require.NoError(t, err)
	require.Equal(t, 1, doc.Len())

	txt := doc.At(0).(*element.Text)
	assert.Nil(t, txt.MaxLength)
	assert.Equal(t, "SN-0001", txt.Display())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].String(), "maxLength -1")
}

func TestElementCodec(t *testing.T) {
	src := newElement(t, element.TypeText, 3, 4)
	element.Apply(src, element.Patch{MaxLength: element.Ptr(5), Width: element.Ptr(55.0)})

	data, err := EncodeElement(src)
	require.NoError(t, err)
	back, err := DecodeElement(data)
	require.NoError(t, err)
	assert.Equal(t, src, back)

	_, err = DecodeElement([]byte(`{"type":`))
	assert.ErrorIs(t, err, ErrMalformedTemplate)
	_, err = DecodeElement([]byte(`{"type":"star","width":1,"height":1}`))
	assert.ErrorIs(t, err, element.ErrUnknownType)
}
