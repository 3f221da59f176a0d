package singlenet

import (
	"encoding/binary"
	"fmt"
	"net"
)

// fieldSpec binds a protocol field to its wire identifier and value
// kind. Single source of truth for the constructor set below; the
// identifiers must match the protocol bit-for-bit.
type fieldSpec struct {
	label     string
	id        byte
	valueKind byte
}

var (
	fieldUserName        = fieldSpec{"User-Name", 0x01, valueKindText}
	fieldClientIPAddress = fieldSpec{"Client-IP-Address", 0x02, valueKindBinary}
	fieldClientVersion   = fieldSpec{"Client-Version", 0x03, valueKindText}
	fieldClientType      = fieldSpec{"Client-Type", 0x04, valueKindText}
	fieldOSVersion       = fieldSpec{"OS-Version", 0x05, valueKindText}
	fieldOSLanguage      = fieldSpec{"OS-Lang", 0x06, valueKindText}
	fieldCPUInfo         = fieldSpec{"CPU-Info", 0x08, valueKindText}
	fieldMACAddress      = fieldSpec{"MAC-Address", 0x09, valueKindText}
	fieldMemorySize      = fieldSpec{"Memory-Size", 0x0a, valueKindInteger}
	fieldDefaultExplorer = fieldSpec{"Default-Explorer", 0x0b, valueKindText}
	fieldKeepaliveTime   = fieldSpec{"KeepAlive-Time", 0x12, valueKindInteger}
	fieldKeepaliveData   = fieldSpec{"KeepAlive-Data", 0x14, valueKindText}
)

func newAttribute(f fieldSpec, payload []byte) Attribute {
	return Attribute{
		label:     f.label,
		id:        f.id,
		typeTag:   0,
		valueKind: f.valueKind,
		payload:   payload,
	}
}

func newUint32Attribute(f fieldSpec, value uint32) Attribute {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], value)
	return newAttribute(f, b[:])
}

// Username carries the account name, e.g. "05802278989@HYXY.XY".
func Username(username string) Attribute {
	return newAttribute(fieldUserName, []byte(username))
}

// ClientIPAddress requires an IPv4 address; payload is the 4 raw
// octets in network order.
func ClientIPAddress(ip net.IP) Attribute {
	ip4 := ip.To4()
	if ip4 == nil {
		panic(fmt.Sprintf("code error singlenet.ClientIPAddress requires IPv4 ip=%s", ip))
	}
	return newAttribute(fieldClientIPAddress, []byte(ip4))
}

func ClientVersion(version string) Attribute {
	return newAttribute(fieldClientVersion, []byte(version))
}

func ClientType(clientType string) Attribute {
	return newAttribute(fieldClientType, []byte(clientType))
}

func OSVersion(version string) Attribute {
	return newAttribute(fieldOSVersion, []byte(version))
}

func OSLanguage(language string) Attribute {
	return newAttribute(fieldOSLanguage, []byte(language))
}

func CPUInfo(cpuInfo string) Attribute {
	return newAttribute(fieldCPUInfo, []byte(cpuInfo))
}

// MACAddress takes 4 bytes, not the usual 6. The upstream protocol
// client sends exactly 4; keep the quirk.
func MACAddress(mac [4]byte) Attribute {
	return newAttribute(fieldMACAddress, mac[:])
}

// MemorySize payload is big-endian u32.
func MemorySize(size uint32) Attribute {
	return newUint32Attribute(fieldMemorySize, size)
}

func DefaultExplorer(explorer string) Attribute {
	return newAttribute(fieldDefaultExplorer, []byte(explorer))
}

// KeepaliveTime payload is the big-endian u32 Unix timestamp of this
// heartbeat.
func KeepaliveTime(timestamp uint32) Attribute {
	return newUint32Attribute(fieldKeepaliveTime, timestamp)
}

// KeepaliveData carries the hex token from CalcKeepaliveData.
func KeepaliveData(data string) Attribute {
	return newAttribute(fieldKeepaliveData, []byte(data))
}
