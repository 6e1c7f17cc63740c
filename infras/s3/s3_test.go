package s3

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"floorplan/config"
)

func TestGetObjectNameFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.BucketName = "floorplan"
	cfg.External.S3.PublicDomain = "https://cdn.example.com/"
	cfg.External.S3.APIEndpoint = "https://s3.example.com"

	svc := &s3Impl{Config: cfg}

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "public url", url: "https://cdn.example.com/layouts/2026-10-18-midday.json", want: "layouts/2026-10-18-midday.json"},
		{name: "api url", url: "https://s3.example.com/floorplan/layouts/a.json", want: "layouts/a.json"},
		{name: "plain key", url: "layouts/a.json", want: "layouts/a.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.GetObjectNameFromURL(tt.url))
		})
	}
}
