// Package protocol implements the fixed-width binary wire protocol spoken
// between a cachemir-core client and server.
//
// Every message is length-prefixed so the reader always knows exactly how
// many bytes to pull off the wire before it can parse anything further.
//
// Request format (little-endian, unsigned):
//
//	u32 total_len   ; bytes that follow
//	u32 nargs
//	repeat nargs times:
//	  u32 arg_len
//	  arg_len bytes of UTF-8 payload
//
// Response format:
//
//	u32 total_len   ; bytes that follow, = 4 + len(payload)
//	u32 status      ; 0=OK, 1=ERR, 2=NX
//	payload_len bytes of payload
package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Status is the outcome a Response carries back to the caller.
type Status uint32

const (
	StatusOK  Status = 0
	StatusErr Status = 1
	StatusNX  Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusErr:
		return "ERR"
	case StatusNX:
		return "NX"
	default:
		return fmt.Sprintf("Status(%d)", uint32(s))
	}
}

const (
	headerFieldSize = 4

	// MaxTotalLen is the largest total_len a request or response frame may
	// declare before the connection is torn down.
	MaxTotalLen = 32 * 1024 * 1024

	// MaxArgs is the largest argument count a request frame may declare.
	MaxArgs = 200_000
)

// Request is one parsed command frame: a list of UTF-8 arguments, e.g.
// ["set", "ex", "k", "v", "30"].
type Request struct {
	Args []string
}

// Response is one framed reply: a status plus an optional payload.
type Response struct {
	Status  Status
	Payload []byte
}

// ReadRequest reads and parses one request frame from r.
//
// It returns an error for any malformed frame, an over-length total_len, or
// an over-limit argument count — all of which the caller must treat as
// fatal to the connection, per the protocol's error model.
func ReadRequest(r io.Reader) (*Request, error) {
	totalLen, err := readU32(r)
	if err != nil {
		return nil, err
	}
	if totalLen > MaxTotalLen {
		return nil, fmt.Errorf("protocol: request total_len %d exceeds %d byte limit", totalLen, MaxTotalLen)
	}

	body := make([]byte, totalLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}

	req, consumed, err := decodeRequestBody(body)
	if err != nil {
		return nil, err
	}
	if consumed != len(body) {
		return nil, fmt.Errorf("protocol: request declared total_len %d but frame used %d bytes", totalLen, consumed)
	}
	return req, nil
}

func decodeRequestBody(body []byte) (*Request, int, error) {
	if len(body) < headerFieldSize {
		return nil, 0, fmt.Errorf("protocol: request body too short for nargs")
	}
	nargs := binary.LittleEndian.Uint32(body)
	if nargs > MaxArgs {
		return nil, 0, fmt.Errorf("protocol: request nargs %d exceeds %d limit", nargs, MaxArgs)
	}
	offset := headerFieldSize

	args := make([]string, nargs)
	for i := uint32(0); i < nargs; i++ {
		if offset+headerFieldSize > len(body) {
			return nil, 0, fmt.Errorf("protocol: request truncated reading arg %d length", i)
		}
		argLen := binary.LittleEndian.Uint32(body[offset:])
		offset += headerFieldSize

		if offset+int(argLen) > len(body) {
			return nil, 0, fmt.Errorf("protocol: request truncated reading arg %d payload", i)
		}
		args[i] = string(body[offset : offset+int(argLen)])
		offset += int(argLen)
	}

	return &Request{Args: args}, offset, nil
}

// WriteRequest serializes req and writes its frame to w.
func WriteRequest(w io.Writer, req *Request) error {
	body := encodeRequestBody(req)
	if len(body) > MaxTotalLen {
		return fmt.Errorf("protocol: request body %d bytes exceeds %d byte limit", len(body), MaxTotalLen)
	}

	frame := make([]byte, headerFieldSize+len(body))
	binary.LittleEndian.PutUint32(frame, uint32(len(body)))
	copy(frame[headerFieldSize:], body)

	_, err := w.Write(frame)
	return err
}

func encodeRequestBody(req *Request) []byte {
	size := headerFieldSize
	for _, arg := range req.Args {
		size += headerFieldSize + len(arg)
	}

	body := make([]byte, size)
	binary.LittleEndian.PutUint32(body, uint32(len(req.Args)))
	offset := headerFieldSize
	for _, arg := range req.Args {
		binary.LittleEndian.PutUint32(body[offset:], uint32(len(arg)))
		offset += headerFieldSize
		copy(body[offset:], arg)
		offset += len(arg)
	}
	return body
}

// ReadResponse reads and parses one response frame from r.
func ReadResponse(r io.Reader) (*Response, error) {
	totalLen, err := readU32(r)
	if err != nil {
		return nil, err
	}
	if totalLen > MaxTotalLen {
		return nil, fmt.Errorf("protocol: response total_len %d exceeds %d byte limit", totalLen, MaxTotalLen)
	}
	if totalLen < headerFieldSize {
		return nil, fmt.Errorf("protocol: response total_len %d too short for status", totalLen)
	}

	body := make([]byte, totalLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}

	return &Response{
		Status:  Status(binary.LittleEndian.Uint32(body)),
		Payload: body[headerFieldSize:],
	}, nil
}

// WriteResponse serializes resp and writes its frame to w.
func WriteResponse(w io.Writer, resp *Response) error {
	totalLen := headerFieldSize + len(resp.Payload)
	if totalLen > MaxTotalLen {
		return fmt.Errorf("protocol: response body %d bytes exceeds %d byte limit", totalLen, MaxTotalLen)
	}

	frame := make([]byte, headerFieldSize+totalLen)
	binary.LittleEndian.PutUint32(frame, uint32(totalLen))
	binary.LittleEndian.PutUint32(frame[headerFieldSize:], uint32(resp.Status))
	copy(frame[headerFieldSize+headerFieldSize:], resp.Payload)

	_, err := w.Write(frame)
	return err
}

func readU32(r io.Reader) (uint32, error) {
	buf := make([]byte, headerFieldSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}
