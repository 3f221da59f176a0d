package singlenet

import "net"

// ClientInfo is the static identity a client reports in every
// heartbeat. Fill it once, typically from config.
type ClientInfo struct {
	Username        string
	IP              net.IP // IPv4
	MAC             [4]byte
	Version         string
	Type            string
	OSVersion       string
	OSLanguage      string
	CPUInfo         string
	MemorySize      uint32
	DefaultExplorer string
}

// HeartbeatAttributes builds the standard heartbeat attribute
// sequence, one of each field in protocol-table order, for the given
// timestamp and keepalive token. The caller owns framing and sending.
func (self ClientInfo) HeartbeatAttributes(timestamp uint32, keepaliveData string) Attributes {
	return Attributes{
		Username(self.Username),
		ClientIPAddress(self.IP),
		ClientVersion(self.Version),
		ClientType(self.Type),
		OSVersion(self.OSVersion),
		OSLanguage(self.OSLanguage),
		CPUInfo(self.CPUInfo),
		MACAddress(self.MAC),
		MemorySize(self.MemorySize),
		DefaultExplorer(self.DefaultExplorer),
		KeepaliveTime(timestamp),
		KeepaliveData(keepaliveData),
	}
}
