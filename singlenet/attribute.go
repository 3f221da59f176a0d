// Package singlenet builds the attribute block of the Singlenet
// heartbeat message: a sequence of TLV fields plus the rotating
// keepalive token that proves the client is still online.
//
// Encode only. The surrounding packet header, transport and session
// handshake live elsewhere.
package singlenet

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

const (
	// Wire header: identifier byte + 2 length bytes.
	headerLength = 3

	// Payload must leave room for the header in the u16 length field.
	PayloadMaxLength = 0xffff - headerLength
)

// Value kind tags describe the payload shape. Metadata only, the
// serializer never writes them.
const (
	valueKindInteger byte = 0x0
	valueKindBinary  byte = 0x1
	valueKindText    byte = 0x2
)

// Attribute is one TLV field of the heartbeat attribute block.
// Immutable after construction; build one with the field constructors
// in this package, serialize it once with Bytes().
type Attribute struct {
	label     string // diagnostics only, not serialized
	id        byte
	typeTag   byte // reserved by protocol, always 0, not serialized
	valueKind byte // metadata, not serialized
	payload   []byte
}

// Len returns the serialized length: payload + 3 byte header.
// Oversized payload is a code error, attributes that long cannot
// appear in this protocol.
func (self Attribute) Len() uint16 {
	if len(self.payload) > PayloadMaxLength {
		panic(fmt.Sprintf("code error singlenet attribute %s payload=%d over max=%d",
			self.label, len(self.payload), PayloadMaxLength))
	}
	return uint16(len(self.payload) + headerLength)
}

// Bytes serializes the attribute: identifier, big-endian u16 total
// length, raw payload. No padding, no terminator.
func (self Attribute) Bytes() []byte {
	b := make([]byte, 0, headerLength+len(self.payload))
	b = append(b, self.id)
	b = binary.BigEndian.AppendUint16(b, self.Len())
	b = append(b, self.payload...)
	return b
}

func (self Attribute) String() string {
	return fmt.Sprintf("%s(%02x)=%s", self.label, self.id, hex.EncodeToString(self.payload))
}

// Attributes is an ordered attribute sequence. Order is wire order.
// Repeated identifiers are not rejected, the protocol tolerates them.
type Attributes []Attribute

// Bytes concatenates the serialization of each attribute in order,
// yielding the heartbeat attribute block.
func (self Attributes) Bytes() []byte {
	total := 0
	for _, a := range self {
		total += headerLength + len(a.payload)
	}
	b := make([]byte, 0, total)
	for _, a := range self {
		b = append(b, a.Bytes()...)
	}
	return b
}
