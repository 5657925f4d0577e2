package hash

import "testing"

func TestSHA256Hex(t *testing.T) {
	// Known SHA256 of "hello"
	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	got := SHA256Hex("hello")
	if got != want {
		t.Errorf("SHA256Hex(\"hello\") = %s, want %s", got, want)
	}
}

func TestSHA256Hex_Empty(t *testing.T) {
	// SHA256 of empty string
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	got := SHA256Hex("")
	if got != want {
		t.Errorf("SHA256Hex(\"\") = %s, want %s", got, want)
	}
}

func TestShortHash(t *testing.T) {
	full := SHA256Hex("192.0.2.10")

	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"12 chars", "192.0.2.10", 12, full[:12]},
		{"8 chars", "192.0.2.10", 8, full[:8]},
		{"full hash if n too long", "192.0.2.10", 100, full},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ShortHash(tt.input, tt.n)
			if got != tt.want {
				t.Errorf("ShortHash(%q, %d) = %s, want %s", tt.input, tt.n, got, tt.want)
			}
		})
	}
}

func TestHashIP(t *testing.T) {
	a := HashIP("192.0.2.10", "salt-a")
	b := HashIP("192.0.2.10", "salt-b")
	if a == b {
		t.Error("different salts should produce different hashes")
	}

	// Deterministic for the same input
	again := HashIP("192.0.2.10", "salt-a")
	if a != again {
		t.Errorf("HashIP not deterministic: %s != %s", a, again)
	}

	// Salted hash differs from the bare hash of the IP
	if a == SHA256Hex("192.0.2.10") {
		t.Error("salted hash should differ from unsalted hash")
	}
}
