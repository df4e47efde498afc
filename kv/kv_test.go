package kv

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	in := map[string]string{"a": "1", "b": "2", "url": "http://x:80", "pad": " spaced ", "empty": ""}
	text, err := Encode(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Decode(text)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Errorf("Decode(Encode(m)) = %v, want %v", out, in)
	}
}

func TestEncodeSorted(t *testing.T) {
	text, err := Encode(map[string]string{"b": "2", "a": "1", "c": ""})
	if err != nil {
		t.Fatal(err)
	}
	if want := "a:1\nb:2\nc:\n"; text != want {
		t.Errorf("Encode = %q, want %q", text, want)
	}
}

func TestEncodeRejectsSeparators(t *testing.T) {
	if _, err := Encode(map[string]string{"a:b": "1"}); err == nil {
		t.Error("expected error for key containing ':'")
	}
	if _, err := Encode(map[string]string{"a": "1\n2"}); err == nil {
		t.Error("expected error for value containing a newline")
	}
	if _, err := Encode(map[string]string{"a": "x\r"}); err == nil {
		t.Error("expected error for value containing a carriage return")
	}
	if _, err := Encode(map[string]string{"a\r": "1"}); err == nil {
		t.Error("expected error for key containing a carriage return")
	}
}

func TestDecodeValueKeepsColons(t *testing.T) {
	m, err := Decode("url:http://x:80\n")
	if err != nil {
		t.Fatal(err)
	}
	if m["url"] != "http://x:80" {
		t.Errorf("url = %q, want %q", m["url"], "http://x:80")
	}
}

func TestDecodeSkipsBlankAndCRLF(t *testing.T) {
	m, err := Decode("a:1\r\n\n  \nb:2")
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"a": "1", "b": "2"}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("Decode = %v, want %v", m, want)
	}
}

func TestDecodeMalformedLine(t *testing.T) {
	_, err := Decode("a:1\nnocolon\n")
	if !errors.Is(err, ErrMalformedLine) {
		t.Fatalf("err = %v, want ErrMalformedLine", err)
	}
	if got := err.Error(); got != "line 2: kv: malformed line" {
		t.Errorf("err = %q", got)
	}
}

func TestStoreFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.kv")
	s := NewStore()
	s.Set("level", "3")
	s.Set("name", "ada")
	if err := s.WriteFile(path); err != nil {
		t.Fatal(err)
	}

	loaded := NewStore()
	if err := loaded.ReadFile(path); err != nil {
		t.Fatal(err)
	}
	if v, ok := loaded.Get("level"); !ok || v != "3" {
		t.Errorf("Get(level) = %q, %v, want 3, true", v, ok)
	}
	if !reflect.DeepEqual(loaded.Data(), s.Data()) {
		t.Errorf("Data = %v, want %v", loaded.Data(), s.Data())
	}
	loaded.Delete("level")
	if loaded.Len() != 1 {
		t.Errorf("Len = %d, want 1", loaded.Len())
	}
}

func TestStoreReadMissingFile(t *testing.T) {
	if err := NewStore().ReadFile(filepath.Join(t.TempDir(), "none")); err == nil {
		t.Error("expected error for missing file")
	}
}
