package scrape

import (
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	c, err := NewClient(Options{
		BaseURL:      "https://warframe.f-rpg.me/",
		Encoding:     "windows-1251",
		RequestDelay: time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.BaseURL() != "https://warframe.f-rpg.me" {
		t.Errorf("base url = %q, want trailing slash trimmed", c.BaseURL())
	}
	if c.decoder == nil {
		t.Error("expected windows-1251 decoder to be configured")
	}
}

func TestNewClientUTF8(t *testing.T) {
	c, err := NewClient(Options{BaseURL: "https://example.org", Encoding: ""})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.decoder != nil {
		t.Error("expected no decoder for UTF-8")
	}
}

func TestNewClientRejectsUnknownEncoding(t *testing.T) {
	if _, err := NewClient(Options{BaseURL: "https://example.org", Encoding: "koi8-r"}); err == nil {
		t.Fatal("expected error for unsupported encoding")
	}
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Fatal("expected error without base URL")
	}
}
