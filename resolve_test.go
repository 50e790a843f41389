package nativeplan

import (
	"testing"

	"github.com/containerd/errdefs"
)

func TestResolveExecutableName(t *testing.T) {
	tests := []struct {
		name       string
		properties map[string]string
		host       *StaticHost
		want       string
	}{
		{
			name:       "property override wins",
			properties: map[string]string{"imageName": "custom"},
			host: &StaticHost{
				Main:     "com.example.Main",
				Binaries: map[string]BinaryConfig{"main": {MainClass: "other"}},
			},
			want: "custom",
		},
		{
			name:       "empty property falls through",
			properties: map[string]string{"imageName": ""},
			host:       &StaticHost{Main: "com.example.Main"},
			want:       "com.example.Main",
		},
		{
			name: "container main identifier",
			host: &StaticHost{Main: "com.example.Main"},
			want: "com.example.Main",
		},
		{
			name: "native build main binary",
			host: &StaticHost{
				Binaries: map[string]BinaryConfig{
					"main":  {MainClass: "com.example.FromNative"},
					"other": {MainClass: "ignored"},
				},
			},
			want: "com.example.FromNative",
		},
		{
			name: "non-main binaries ignored",
			host: &StaticHost{
				Binaries: map[string]BinaryConfig{"other": {MainClass: "ignored"}},
			},
			want: "",
		},
		{
			name: "no source configured",
			host: &StaticHost{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container, err := tt.host.Container()
			if err != nil {
				t.Fatal(err)
			}

			got, err := resolveExecutableName(tt.properties, container, tt.host)
			if tt.want == "" {
				if err == nil {
					t.Fatal("expected error when no source yields a name")
				}
				if !errdefs.IsInvalidArgument(err) {
					t.Fatalf("expected invalid-argument classification, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
