package wire

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func mustDecode(t *testing.T, b []byte) []byte {
	t.Helper()
	p, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	return p
}

func TestRoundTripEmptyAndNonEmpty(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("hello"),
		{0, 1, 2, 3, 4},
	}
	for _, payload := range cases {
		enc := Encode(payload)
		p := mustDecode(t, enc)
		if !bytes.Equal(p, payload) {
			t.Fatalf("payload mismatch: got %x want %x", p, payload)
		}
	}
}

func TestRejectsTrailingBytes(t *testing.T) {
	enc := Encode([]byte("x"))
	enc = append(enc, 0xDE, 0xAD) // add junk
	if _, err := Decode(enc); err == nil {
		t.Fatalf("expected error on trailing bytes")
	}
}

func TestCorruptHeadersAndLengths(t *testing.T) {
	enc := Encode([]byte("abc"))

	// bad magic
	badMagic := append([]byte(nil), enc...)
	badMagic[0] = 'X'
	if _, err := Decode(badMagic); err == nil {
		t.Fatalf("expected error on bad magic")
	}

	// wrong version
	badVer := append([]byte(nil), enc...)
	badVer[4] = version + 1
	if _, err := Decode(badVer); err == nil {
		t.Fatalf("expected error on bad version")
	}

	// wrong kind
	badKind := append([]byte(nil), enc...)
	badKind[5] = kindTuple + 1
	if _, err := Decode(badKind); err == nil {
		t.Fatalf("expected error on bad kind")
	}

	// vlen too large (announce more than available)
	tooLong := append([]byte(nil), enc...)
	// vlen is at offset 6..9 (4 magic +1 ver +1 kind)
	binary.BigEndian.PutUint32(tooLong[6:10], uint32(len("abc")+1))
	if _, err := Decode(tooLong); err == nil {
		t.Fatalf("expected error on vlen beyond buffer")
	}

	// vlen too small (leaves unclaimed bytes)
	tooShort := append([]byte(nil), enc...)
	binary.BigEndian.PutUint32(tooShort[6:10], uint32(len("abc")-1))
	if _, err := Decode(tooShort); err == nil {
		t.Fatalf("expected error on vlen short of buffer")
	}

	// truncated buffer
	trunc := enc[:len(enc)-1]
	if _, err := Decode(trunc); err == nil {
		t.Fatalf("expected error on truncated buffer")
	}

	// foreign value (no frame at all)
	if _, err := Decode([]byte(`{"filename":"x"}`)); err == nil {
		t.Fatalf("expected error on unframed value")
	}
}

func TestZeroCopyPayload(t *testing.T) {
	enc := Encode([]byte("Z"))
	p := mustDecode(t, enc)
	if len(p) != 1 {
		t.Fatalf("unexpected payload len")
	}
	// mutate payload slice. should mutate underlying enc bytes (zero-copy)
	p[0] = 'Q'
	p2 := mustDecode(t, enc)
	if p2[0] != 'Q' {
		t.Fatalf("expected zero-copy slice into enc buffer")
	}
}
