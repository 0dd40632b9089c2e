package xilinx

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/redballoonsecurity/bal"
)

const wordSize = 4

type bitstreamSerializer struct {
	ctx *bal.TreeContext
}

// NewBitstreamSerializer constructs the serializer for whole bitstreams.
func NewBitstreamSerializer(ctx *bal.TreeContext) bal.Serializer {
	return &bitstreamSerializer{ctx: ctx}
}

// Deserialize splits a bitstream at the sync marker into packed header,
// marker, and packet segments. The segments stay packed until unpacked
// themselves.
func (s *bitstreamSerializer) Deserialize(data []byte) (bal.Model, error) {
	idx := bytes.Index(data, SyncWord)
	if idx < 0 {
		return nil, fmt.Errorf("sync marker %X not present", SyncWord)
	}
	if len(data)-(idx+len(SyncWord)) < wordSize {
		return nil, fmt.Errorf("no configuration data after sync marker at offset %d", idx)
	}
	return NewBitstreamModel(
		bal.NewPackedNode(s.ctx, data[:idx], Header),
		bal.NewPackedNode(s.ctx, data[idx:idx+len(SyncWord)], SyncMarker),
		bal.NewPackedNode(s.ctx, data[idx+len(SyncWord):], Packets),
	), nil
}

func (s *bitstreamSerializer) Serialize(model bal.Model) ([]byte, error) {
	m, ok := model.(*BitstreamModel)
	if !ok {
		return nil, &bal.TypeMismatchError{Want: Bitstream, Got: model.ModelInterface()}
	}
	header, err := m.Header().Pack(false)
	if err != nil {
		return nil, fmt.Errorf("pack header: %w", err)
	}
	marker, err := m.SyncMarker().Pack(false)
	if err != nil {
		return nil, fmt.Errorf("pack sync marker: %w", err)
	}
	packets, err := m.Packets().Pack(false)
	if err != nil {
		return nil, fmt.Errorf("pack packets: %w", err)
	}

	out := make([]byte, 0, len(header)+len(marker)+len(packets))
	out = append(out, header...)
	out = append(out, marker...)
	out = append(out, packets...)
	return out, nil
}

type packetsSerializer struct {
	ctx *bal.TreeContext
}

// NewPacketsSerializer constructs the serializer for the configuration
// data following the sync marker.
func NewPacketsSerializer(ctx *bal.TreeContext) bal.Serializer {
	return &packetsSerializer{ctx: ctx}
}

// Deserialize splits configuration data into packed 32-bit words.
func (s *packetsSerializer) Deserialize(data []byte) (bal.Model, error) {
	if len(data)%wordSize != 0 {
		return nil, fmt.Errorf("configuration data length %d is not word aligned", len(data))
	}
	words := make([]*bal.Node, 0, len(data)/wordSize)
	for off := 0; off < len(data); off += wordSize {
		words = append(words, bal.NewPackedNode(s.ctx, data[off:off+wordSize], Word))
	}
	return bal.NewArrayModel(Packets, words...), nil
}

func (s *packetsSerializer) Serialize(model bal.Model) ([]byte, error) {
	m, ok := model.(*bal.ArrayModel)
	if !ok || m.ModelInterface() != Packets {
		return nil, &bal.TypeMismatchError{Want: Packets, Got: model.ModelInterface()}
	}
	out := make([]byte, 0, m.Len()*wordSize)
	for i := 0; i < m.Len(); i++ {
		word, err := m.At(i).Pack(false)
		if err != nil {
			return nil, fmt.Errorf("pack word %d: %w", i, err)
		}
		out = append(out, word...)
	}
	return out, nil
}

type wordSerializer struct{}

// NewWordSerializer constructs the serializer for single configuration
// words.
func NewWordSerializer(*bal.TreeContext) bal.Serializer {
	return wordSerializer{}
}

func (wordSerializer) Deserialize(data []byte) (bal.Model, error) {
	if len(data) != wordSize {
		return nil, fmt.Errorf("configuration word is %d bytes, want %d", len(data), wordSize)
	}
	return bal.NewValueModel(Word, uint64(binary.BigEndian.Uint32(data))), nil
}

func (wordSerializer) Serialize(model bal.Model) ([]byte, error) {
	m, ok := model.(*bal.ValueModel)
	if !ok || m.ModelInterface() != Word {
		return nil, &bal.TypeMismatchError{Want: Word, Got: model.ModelInterface()}
	}
	out := make([]byte, wordSize)
	binary.BigEndian.PutUint32(out, uint32(m.Value()))
	return out, nil
}
