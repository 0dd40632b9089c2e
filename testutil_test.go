package bal

import (
	"fmt"
)

// Test format: a length-prefixed blob. Byte 0 is the header length,
// the header follows, the rest is the body. Header and body stay
// opaque (no serializer registered for them).
var (
	testBlob   = NewInterface("Blob", "A length-prefixed test blob.")
	testHeader = NewInterface("BlobHeader", "The opaque blob header.")
	testBody   = NewInterface("BlobBody", "The opaque blob body.")
)

type callCounts struct {
	deserialize int
	serialize   int
}

type blobSerializer struct {
	ctx    *TreeContext
	counts *callCounts
}

func newBlobFactory(counts *callCounts) SerializerFactory {
	return func(ctx *TreeContext) Serializer {
		return &blobSerializer{ctx: ctx, counts: counts}
	}
}

func (s *blobSerializer) Deserialize(data []byte) (Model, error) {
	s.counts.deserialize++
	if len(data) == 0 {
		return nil, fmt.Errorf("empty blob")
	}
	headerLen := int(data[0])
	if len(data) < 1+headerLen {
		return nil, fmt.Errorf("blob shorter than declared header length %d", headerLen)
	}
	return NewStructModel(testBlob,
		Field{Name: "header", Node: NewPackedNode(s.ctx, data[1:1+headerLen], testHeader)},
		Field{Name: "body", Node: NewPackedNode(s.ctx, data[1+headerLen:], testBody)},
	), nil
}

func (s *blobSerializer) Serialize(model Model) ([]byte, error) {
	s.counts.serialize++
	m, ok := model.(*StructModel)
	if !ok || m.ModelInterface() != testBlob {
		return nil, &TypeMismatchError{Want: testBlob, Got: model.ModelInterface()}
	}
	header, err := m.Field("header").Pack(false)
	if err != nil {
		return nil, err
	}
	body, err := m.Field("body").Pack(false)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, 1+len(header)+len(body))
	out = append(out, byte(len(header)))
	out = append(out, header...)
	out = append(out, body...)
	return out, nil
}

// blobBytes builds a valid test blob.
func blobBytes(header, body []byte) []byte {
	out := []byte{byte(len(header))}
	out = append(out, header...)
	out = append(out, body...)
	return out
}

// newBlobContext builds a context with the blob serializer registered.
func newBlobContext(data []byte) (*TreeContext, *callCounts) {
	counts := &callCounts{}
	factory := NewFactory(testBlob)
	factory.RegisterSerializer(testBlob, newBlobFactory(counts))
	ctx, _ := factory.Create(data)
	return ctx, counts
}
