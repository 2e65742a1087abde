package transport

import "sync"

// maxMessageSize is the largest mDNS message this transport reads or writes.
//
// See https://tools.ietf.org/html/rfc6762#section-17.
const maxMessageSize = 9000

var buffers = sync.Pool{
	New: func() interface{} {
		return make([]byte, maxMessageSize)
	},
}

func getBuffer() []byte {
	return buffers.Get().([]byte)
}

// putBuffer returns buf to the pool. Buffers that were not allocated by the
// pool are dropped.
func putBuffer(buf []byte) {
	if cap(buf) == maxMessageSize {
		buffers.Put(buf[:maxMessageSize])
	}
}
