package png

import "testing"

func TestCheckSignatureOK(t *testing.T) {
	b := append(append([]byte{}, pngSignature[:]...), 0x01, 0x02)
	rest, err := checkSignature(b)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if len(rest) != 2 || rest[0] != 0x01 || rest[1] != 0x02 {
		t.Fatalf("unexpected remainder: %v", rest)
	}
}

func TestCheckSignatureBad(t *testing.T) {
	cases := [][]byte{
		nil,
		{0x89, 0x50},
		append([]byte{0x00}, pngSignature[1:]...),
	}
	for i, b := range cases {
		if _, err := checkSignature(b); err == nil {
			t.Fatalf("case %d: expected error, got nil", i)
		}
	}
}
