package tool

import (
	"crypto/x509"
	"encoding/pem"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGenerateTlsCertificate(t *testing.T) {
	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key.pem")
	certFile := filepath.Join(dir, "cert.pem")

	err := GenerateTlsCertificate("acme", "Display Server", keyFile, certFile, []string{"localhost", "127.0.0.1"})
	if err != nil {
		t.Fatalf("GenerateTlsCertificate: %v", err)
	}

	raw, err := os.ReadFile(certFile)
	if err != nil {
		t.Fatalf("certificate not written: %v", err)
	}
	block, _ := pem.Decode(raw)
	if block == nil || block.Type != "CERTIFICATE" {
		t.Fatalf("certificate file is not a CERTIFICATE pem block")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		t.Fatalf("certificate does not parse: %v", err)
	}

	if cert.Subject.CommonName != "Display Server" {
		t.Errorf("common name = %q", cert.Subject.CommonName)
	}
	if len(cert.Subject.Organization) != 1 || cert.Subject.Organization[0] != "acme" {
		t.Errorf("organization = %v", cert.Subject.Organization)
	}
	if len(cert.DNSNames) != 1 || cert.DNSNames[0] != "localhost" {
		t.Errorf("dns names = %v", cert.DNSNames)
	}
	if len(cert.IPAddresses) != 1 || !cert.IPAddresses[0].Equal(net.ParseIP("127.0.0.1")) {
		t.Errorf("ip addresses = %v", cert.IPAddresses)
	}
	if got := cert.NotAfter.Sub(cert.NotBefore); got != certValidity {
		t.Errorf("validity = %v, want %v", got, certValidity)
	}
	if cert.NotAfter.Before(time.Now()) {
		t.Error("certificate already expired")
	}

	raw, err = os.ReadFile(keyFile)
	if err != nil {
		t.Fatalf("key not written: %v", err)
	}
	block, _ = pem.Decode(raw)
	if block == nil || block.Type != "EC PRIVATE KEY" {
		t.Fatal("key file is not an EC PRIVATE KEY pem block")
	}
	if _, err = x509.ParseECPrivateKey(block.Bytes); err != nil {
		t.Fatalf("key does not parse: %v", err)
	}
}
