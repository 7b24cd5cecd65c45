package types

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestEntityID_Fields(t *testing.T) {
	tests := []struct {
		name   string
		depth  uint8
		kind   uint8
		gen    uint16
		serial uint32
	}{
		{"All zero", 0, 0, 0, 0},
		{"Simple values", 1, 2, 3, 4},
		{"Max values", maskDepth, maskKind, maskGen, maskSerial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := PackEntityID(tt.depth, tt.kind, tt.gen, tt.serial)

			if id.Depth() != tt.depth {
				t.Errorf("Depth() = %v, want %v", id.Depth(), tt.depth)
			}
			if id.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", id.Kind(), tt.kind)
			}
			if id.Generation() != tt.gen {
				t.Errorf("Generation() = %v, want %v", id.Generation(), tt.gen)
			}
			if id.Serial() != tt.serial {
				t.Errorf("Serial() = %v, want %v", id.Serial(), tt.serial)
			}
		})
	}
}

func TestEntityID_IsNil(t *testing.T) {
	tests := []struct {
		name string
		id   EntityID
		want bool
	}{
		{"Zero is Nil", 0, true},
		{"NilEntityID constant", NilEntityID, true},
		{"Non-zero is not Nil", PackEntityID(1, 1, 1, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.IsNil(); got != tt.want {
				t.Errorf("IsNil() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntityID_MarshalJSON(t *testing.T) {
	got, err := PackEntityID(0, 0, 0, 42).MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	if !bytes.Equal(got, []byte(`"42"`)) {
		t.Errorf("MarshalJSON() = %s, want \"42\"", got)
	}
}

func TestEntityID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		want    EntityID
		wantErr bool
	}{
		{name: "String ID", data: []byte(`"123"`), want: EntityID(123)},
		{name: "Number ID", data: []byte(`456`), want: EntityID(456)},
		{name: "Empty string", data: []byte(`""`), want: NilEntityID},
		{name: "Invalid format", data: []byte(`"abc"`), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id EntityID
			err := id.UnmarshalJSON(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && id != tt.want {
				t.Errorf("UnmarshalJSON() = %v, want %v", id, tt.want)
			}
		})
	}
}

func TestEntityID_JSONRoundTrip(t *testing.T) {
	original := PackEntityID(3, 4, 5, 6)

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	var decoded EntityID
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if decoded != original {
		t.Errorf("JSON round-trip failed: got %v, want %v", decoded, original)
	}
}

func TestIDAllocator_Next(t *testing.T) {
	a := NewIDAllocator(7)

	seen := make(map[EntityID]bool)
	for i := 0; i < 100; i++ {
		id := a.Next(2, 3)
		if id.IsNil() {
			t.Fatal("allocator returned nil id")
		}
		if seen[id] {
			t.Fatalf("allocator returned duplicate id %v", id)
		}
		seen[id] = true

		if id.Generation() != 7 || id.Depth() != 2 || id.Kind() != 3 {
			t.Errorf("unexpected packing: %v", id)
		}
	}

	if a.Issued() != 100 {
		t.Errorf("Issued() = %d, want 100", a.Issued())
	}
}

// FuzzPackEntityID проверяет инвариант:
// PackEntityID → извлечение полей → равенство исходным значениям.
func FuzzPackEntityID(f *testing.F) {
	f.Add(uint8(0), uint8(0), uint16(0), uint32(0))
	f.Add(uint8(1), uint8(2), uint16(3), uint32(4))
	f.Add(uint8(255), uint8(255), uint16(65535), uint32(4294967295))

	f.Fuzz(func(t *testing.T, depth uint8, kind uint8, gen uint16, serial uint32) {
		id := PackEntityID(depth, kind, gen, serial)

		if id.Depth() != depth || id.Kind() != kind || id.Generation() != gen || id.Serial() != serial {
			t.Fatalf("roundtrip mismatch for %v", id)
		}
	})
}
