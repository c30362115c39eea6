package codec

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/kbukum/restwire/errors"
)

type rack struct {
	XMLName xml.Name `xml:"rack" json:"-" yaml:"-"`
	ID      int      `xml:"id" json:"id" yaml:"id"`
	Name    string   `xml:"name" json:"name" yaml:"name"`
}

func TestRegistry_Lookup(t *testing.T) {
	r := Default()
	tests := []struct {
		mediaType string
		want      Codec
	}{
		{"application/json", JSON{}},
		{"application/json; charset=UTF-8", JSON{}},
		{"Application/JSON", JSON{}},
		{"application/vnd.openstack.compute+json", JSON{}},
		{"application/xml", XML{}},
		{"text/xml", XML{}},
		{"application/vnd.abiquo.datacenter+xml", XML{}},
		{"application/vnd.abiquo.datacenter+xml; version=2.0", XML{}},
		{"application/x-yaml", YAML{}},
		{"application/problem+yaml", YAML{}},
		{"text/plain", Text{}},
	}
	for _, tt := range tests {
		t.Run(tt.mediaType, func(t *testing.T) {
			got, err := r.Lookup(tt.mediaType)
			if err != nil {
				t.Fatalf("Lookup: %v", err)
			}
			if got != tt.want {
				t.Errorf("Lookup = %T, want %T", got, tt.want)
			}
		})
	}

	_, err := r.Lookup("text/csv")
	if !errors.IsCode(err, errors.ErrCodeUnsupportedMediaType) {
		t.Errorf("Lookup(text/csv) = %v, want UNSUPPORTED_MEDIA_TYPE", err)
	}
}

func TestRegistry_ExactBeatsSuffix(t *testing.T) {
	r := Default().Register("application/vnd.legacy+xml", Text{})
	got, err := r.Lookup("application/vnd.legacy+xml")
	if err != nil || got != (Text{}) {
		t.Errorf("Lookup = %T, %v; want Text", got, err)
	}
}

func TestXML_RoundTrip(t *testing.T) {
	r := Default()
	data, err := r.Encode("application/vnd.abiquo.rack+xml", rack{ID: 1, Name: "Aloha"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := XMLHeader + "<rack><id>1</id><name>Aloha</name></rack>"
	if string(data) != want {
		t.Errorf("Encode = %s, want %s", data, want)
	}

	var back rack
	if err := r.Decode("application/vnd.abiquo.rack+xml", data, &back); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if back.ID != 1 || back.Name != "Aloha" {
		t.Errorf("Decode = %+v", back)
	}
}

func TestJSONAndYAML(t *testing.T) {
	r := Default()

	data, err := r.Encode(MediaJSON, rack{ID: 2, Name: "Mahalo"})
	if err != nil || string(data) != `{"id":2,"name":"Mahalo"}` {
		t.Errorf("Encode json = %s, %v", data, err)
	}

	var y rack
	if err := r.Decode(MediaYAML, []byte("id: 3\nname: Kauai\n"), &y); err != nil || y.Name != "Kauai" {
		t.Errorf("Decode yaml = %+v, %v", y, err)
	}

	err = r.Decode(MediaJSON, []byte("{broken"), &y)
	if !errors.IsCode(err, errors.ErrCodeDecodeFailure) {
		t.Errorf("Decode broken = %v, want DECODE_FAILURE", err)
	}
}

func TestText(t *testing.T) {
	r := Default()

	data, err := r.Encode(MediaText, "KVM")
	if err != nil || string(data) != "KVM" {
		t.Errorf("Encode = %q, %v", data, err)
	}
	var s string
	if err := r.Decode(MediaText, []byte("XENSERVER"), &s); err != nil || s != "XENSERVER" {
		t.Errorf("Decode = %q, %v", s, err)
	}
	var b []byte
	if err := r.Decode(MediaText, []byte("raw"), &b); err != nil || string(b) != "raw" {
		t.Errorf("Decode bytes = %q, %v", b, err)
	}

	_, err = r.Encode(MediaText, 42)
	if !errors.IsCode(err, errors.ErrCodeEncodeFailure) {
		t.Errorf("Encode(int) = %v, want ENCODE_FAILURE", err)
	}
	var n int
	if err := r.Decode(MediaText, []byte("1"), &n); err == nil {
		t.Error("expected an error decoding text into an int")
	}
}

func TestFuncs(t *testing.T) {
	upper := Funcs{
		EncodeFunc: func(v any) ([]byte, error) { return []byte(strings.ToUpper(v.(string))), nil },
		DecodeFunc: func(data []byte, v any) error { *v.(*string) = strings.ToLower(string(data)); return nil },
	}
	r := NewRegistry().Register("text/x-shout", upper)

	data, err := r.Encode("text/x-shout", "hi")
	if err != nil || string(data) != "HI" {
		t.Errorf("Encode = %q, %v", data, err)
	}
	var s string
	if err := r.Decode("text/x-shout", []byte("HI"), &s); err != nil || s != "hi" {
		t.Errorf("Decode = %q, %v", s, err)
	}
}
