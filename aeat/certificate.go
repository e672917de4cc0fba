package aeat

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"software.sslmate.com/src/go-pkcs12"
)

// loadCredential reads an mTLS credential from disk. Accepted formats:
// a combined PEM with an unencrypted key, a PEM with an encrypted key
// plus passphrase, or a PKCS#12 bundle plus passphrase. PKCS#12 bundles
// are staged as a temporary combined PEM whose path is returned so the
// client can remove it on teardown.
func loadCredential(path, password string) (tls.Certificate, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tls.Certificate{}, "", &CertificateError{Message: "failed to read certificate file", Err: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pfx", ".p12":
		return stagePKCS12(data, password)
	default:
		cert, err := loadPEM(data, password)
		return cert, "", err
	}
}

// stagePKCS12 converts a PKCS#12 bundle into a temporary combined PEM
// and loads the key pair from it
func stagePKCS12(data []byte, password string) (tls.Certificate, string, error) {
	key, leaf, chain, err := pkcs12.DecodeChain(data, password)
	if err != nil {
		return tls.Certificate{}, "", &CertificateError{
			Message: "failed to read PKCS#12 certificate, check password and file format",
			Err:     err,
		}
	}
	if key == nil || leaf == nil {
		return tls.Certificate{}, "", &CertificateError{
			Message: "PKCS#12 file does not contain a valid certificate and private key",
		}
	}

	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return tls.Certificate{}, "", &CertificateError{Message: "failed to serialize private key", Err: err}
	}

	var combined []byte
	combined = append(combined, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: leaf.Raw})...)
	for _, ca := range chain {
		combined = append(combined, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: ca.Raw})...)
	}
	combined = append(combined, pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})...)

	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("verifactu-%s.pem", uuid.NewString()))
	if err := os.WriteFile(tempPath, combined, 0o600); err != nil {
		return tls.Certificate{}, "", &CertificateError{Message: "failed to write temporary PEM file", Err: err}
	}

	cert, err := tls.X509KeyPair(combined, combined)
	if err != nil {
		os.Remove(tempPath)
		return tls.Certificate{}, "", &CertificateError{Message: "failed to load converted certificate", Err: err}
	}
	return cert, tempPath, nil
}

// loadPEM loads a combined PEM credential, decrypting the private key
// when a passphrase is supplied
func loadPEM(data []byte, password string) (tls.Certificate, error) {
	if password == "" {
		cert, err := tls.X509KeyPair(data, data)
		if err != nil {
			return tls.Certificate{}, &CertificateError{Message: "failed to load PEM certificate", Err: err}
		}
		return cert, nil
	}

	var certPEM, keyPEM []byte
	rest := data
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		switch {
		case block.Type == "CERTIFICATE":
			certPEM = append(certPEM, pem.EncodeToMemory(block)...)
		case strings.HasSuffix(block.Type, "PRIVATE KEY"):
			if x509.IsEncryptedPEMBlock(block) {
				der, err := x509.DecryptPEMBlock(block, []byte(password))
				if err != nil {
					return tls.Certificate{}, &CertificateError{
						Message: "failed to decrypt private key, check password",
						Err:     err,
					}
				}
				block = &pem.Block{Type: block.Type, Bytes: der}
			}
			keyPEM = append(keyPEM, pem.EncodeToMemory(block)...)
		}
	}
	if len(certPEM) == 0 || len(keyPEM) == 0 {
		return tls.Certificate{}, &CertificateError{
			Message: "PEM file does not contain a certificate and private key",
		}
	}

	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return tls.Certificate{}, &CertificateError{Message: "failed to load PEM certificate", Err: err}
	}
	return cert, nil
}
