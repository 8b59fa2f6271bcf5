package protocol

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestRequestRoundTrip(t *testing.T) {
	req := &Request{Args: []string{"set", "ex", "k", "v", "30"}}

	var buf bytes.Buffer
	if err := WriteRequest(&buf, req); err != nil {
		t.Fatalf("WriteRequest() error = %v", err)
	}

	got, err := ReadRequest(&buf)
	if err != nil {
		t.Fatalf("ReadRequest() error = %v", err)
	}

	if len(got.Args) != len(req.Args) {
		t.Fatalf("Args = %v; want %v", got.Args, req.Args)
	}
	for i := range req.Args {
		if got.Args[i] != req.Args[i] {
			t.Fatalf("Args[%d] = %q; want %q", i, got.Args[i], req.Args[i])
		}
	}
}

func TestRequestRoundTripZeroArgs(t *testing.T) {
	req := &Request{Args: []string{}}

	var buf bytes.Buffer
	if err := WriteRequest(&buf, req); err != nil {
		t.Fatalf("WriteRequest() error = %v", err)
	}

	got, err := ReadRequest(&buf)
	if err != nil {
		t.Fatalf("ReadRequest() error = %v", err)
	}
	if len(got.Args) != 0 {
		t.Fatalf("Args = %v; want empty", got.Args)
	}
}

func TestResponseRoundTrip(t *testing.T) {
	resp := &Response{Status: StatusOK, Payload: []byte("bar")}

	var buf bytes.Buffer
	if err := WriteResponse(&buf, resp); err != nil {
		t.Fatalf("WriteResponse() error = %v", err)
	}

	got, err := ReadResponse(&buf)
	if err != nil {
		t.Fatalf("ReadResponse() error = %v", err)
	}
	if got.Status != StatusOK {
		t.Fatalf("Status = %v; want OK", got.Status)
	}
	if !bytes.Equal(got.Payload, resp.Payload) {
		t.Fatalf("Payload = %q; want %q", got.Payload, resp.Payload)
	}
}

func TestResponseRoundTripEmptyPayload(t *testing.T) {
	resp := &Response{Status: StatusNX}

	var buf bytes.Buffer
	if err := WriteResponse(&buf, resp); err != nil {
		t.Fatalf("WriteResponse() error = %v", err)
	}

	got, err := ReadResponse(&buf)
	if err != nil {
		t.Fatalf("ReadResponse() error = %v", err)
	}
	if got.Status != StatusNX {
		t.Fatalf("Status = %v; want NX", got.Status)
	}
	if len(got.Payload) != 0 {
		t.Fatalf("Payload = %q; want empty", got.Payload)
	}
}

func TestReadRequestRejectsOversizedTotalLen(t *testing.T) {
	var buf bytes.Buffer
	header := make([]byte, headerFieldSize)
	binary.LittleEndian.PutUint32(header, MaxTotalLen+1)
	buf.Write(header)

	if _, err := ReadRequest(&buf); err == nil {
		t.Fatalf("ReadRequest() on oversized total_len should return an error")
	}
}

func TestReadRequestRejectsTrailingBytes(t *testing.T) {
	// nargs = 0 but the body claims more bytes follow than the encoding uses.
	body := make([]byte, headerFieldSize+4)
	binary.LittleEndian.PutUint32(body, 0)

	var buf bytes.Buffer
	header := make([]byte, headerFieldSize)
	binary.LittleEndian.PutUint32(header, uint32(len(body)))
	buf.Write(header)
	buf.Write(body)

	if _, err := ReadRequest(&buf); err == nil {
		t.Fatalf("ReadRequest() with trailing bytes should return an error")
	}
}

func TestReadRequestRejectsExcessiveArgCount(t *testing.T) {
	body := make([]byte, headerFieldSize)
	binary.LittleEndian.PutUint32(body, MaxArgs+1)

	var buf bytes.Buffer
	header := make([]byte, headerFieldSize)
	binary.LittleEndian.PutUint32(header, uint32(len(body)))
	buf.Write(header)
	buf.Write(body)

	if _, err := ReadRequest(&buf); err == nil {
		t.Fatalf("ReadRequest() with nargs over the limit should return an error")
	}
}
