package pb

import (
	"reflect"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/gogo/protobuf/protoc-gen-gogo/descriptor"
)

func TestDescriptors(t *testing.T) {
	if proto.FileDescriptor("gfpoly.proto") == nil {
		t.Fatal("gfpoly.proto is not registered")
	}

	tests := []struct {
		msg  descriptor.Message
		name string
	}{
		{&Polynomial{}, "Polynomial"},
		{&Query{}, "Query"},
		{&Response{}, "Response"},
		{&Database{}, "Database"},
		{&Database_Conway{}, "Conway"},
		{&Database_MinimalTerm{}, "MinimalTerm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fd, md := descriptor.ForMessage(tt.msg)
			if fd.GetPackage() != "gfpoly.pb" {
				t.Fatalf("package %q", fd.GetPackage())
			}
			if md.GetName() != tt.name {
				t.Fatalf("got message %q, want %q", md.GetName(), tt.name)
			}

			tags := make(map[string]int)
			for _, p := range proto.GetProperties(reflect.TypeOf(tt.msg).Elem()).Prop {
				if p.Tag > 0 {
					tags[p.OrigName] = p.Tag
				}
			}
			if len(md.GetField()) != len(tags) {
				t.Fatalf("descriptor has %d fields, struct has %d", len(md.GetField()), len(tags))
			}
			for _, f := range md.GetField() {
				if tags[f.GetName()] != int(f.GetNumber()) {
					t.Errorf("field %s: descriptor number %d, struct tag %d", f.GetName(), f.GetNumber(), tags[f.GetName()])
				}
			}
		})
	}
}

func TestEnumDescriptors(t *testing.T) {
	fd, _ := descriptor.ForMessage(&Query{})
	kinds := fd.GetMessageType()[1].GetEnumType()[0].GetValue()
	if len(kinds) != len(Query_Kind_name) {
		t.Fatalf("descriptor has %d kinds, want %d", len(kinds), len(Query_Kind_name))
	}
	for _, v := range kinds {
		if Query_Kind_name[v.GetNumber()] != v.GetName() {
			t.Errorf("kind %d: descriptor %s, generated %s", v.GetNumber(), v.GetName(), Query_Kind_name[v.GetNumber()])
		}
	}
	codes := fd.GetMessageType()[2].GetEnumType()[0].GetValue()
	if len(codes) != len(Response_Code_name) {
		t.Fatalf("descriptor has %d codes, want %d", len(codes), len(Response_Code_name))
	}
	for _, v := range codes {
		if Response_Code_name[v.GetNumber()] != v.GetName() {
			t.Errorf("code %d: descriptor %s, generated %s", v.GetNumber(), v.GetName(), Response_Code_name[v.GetNumber()])
		}
	}
}
