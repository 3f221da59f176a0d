package singlenet

import (
	"crypto/md5"
	"encoding/binary"
	"encoding/hex"

	"github.com/denghub/libnetkeeper/helpers"
)

// Salt for the very first heartbeat, before any token exists.
const keepaliveSeed = "llwl"

// CalcKeepaliveData derives the rotating token for KeepaliveData:
// md5 over big-endian u32 timestamp followed by the salt, as 32 chars
// of lowercase hex. Salt is lastData, or the fixed protocol seed when
// lastData is empty. Pure function; the server expects each token
// salted with the previous one, so pass the last result back in on
// the next call.
func CalcKeepaliveData(timestamp uint32, lastData string) string {
	salt := lastData
	if salt == "" {
		salt = keepaliveSeed
	}

	var tsbuf [4]byte
	binary.BigEndian.PutUint32(tsbuf[:], timestamp)

	h := md5.New()
	h.Write(tsbuf[:])
	h.Write([]byte(salt))
	return hex.EncodeToString(h.Sum(nil))
}

// NextKeepaliveData is CalcKeepaliveData at the current time.
func NextKeepaliveData(lastData string) string {
	return CalcKeepaliveData(helpers.CurrentTimestamp(), lastData)
}

// TokenChain tracks the last issued token so successive heartbeats
// salt correctly. Zero value starts a fresh chain from the seed.
// Not safe for concurrent use.
type TokenChain struct {
	last string
}

// Next derives the token for timestamp, remembers it and returns it.
func (self *TokenChain) Next(timestamp uint32) string {
	self.last = CalcKeepaliveData(timestamp, self.last)
	return self.last
}

// Reset forgets the chain; the next token is salted with the seed.
func (self *TokenChain) Reset() { self.last = "" }
