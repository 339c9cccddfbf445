package gcs

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Emman-24/backendFlorist/pkg/storage"
	"github.com/golang-jwt/jwt/v5"
)

type roundTripFunc func(*http.Request) *http.Response

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func staticTokenSource() *tokenSource {
	return &tokenSource{fetch: func(context.Context) (string, time.Time, error) {
		return "token", time.Now().Add(time.Hour), nil
	}}
}

func newTestClient(rt roundTripFunc) *Client {
	return &Client{
		bucket:      "bucket",
		tokenSource: staticTokenSource(),
		httpClient:  &http.Client{Transport: rt},
		apiBase:     defaultAPIBase,
		uploadBase:  defaultUploadBase,
		publicBase:  defaultPublicBase,
	}
}

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func TestUploadSendsMediaAndReturnsPublicURL(t *testing.T) {
	t.Parallel()

	var gotBody, gotType, gotName string
	client := newTestClient(func(req *http.Request) *http.Response {
		if req.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", req.Method)
		}
		if req.Header.Get("Authorization") != "Bearer token" {
			t.Errorf("unexpected auth %s", req.Header.Get("Authorization"))
		}
		gotType = req.Header.Get("Content-Type")
		gotName = req.URL.Query().Get("name")
		b, _ := io.ReadAll(req.Body)
		gotBody = string(b)
		return response(http.StatusOK, `{"name":"x"}`)
	})

	res, err := client.Upload(context.Background(), storage.File{
		OriginalName: "rosa.webp",
		ContentType:  "image/webp",
		Body:         strings.NewReader("webp-bytes"),
	}, "products/flores/rosas")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if gotBody != "webp-bytes" || gotType != "image/webp" {
		t.Fatalf("unexpected upload payload body=%q type=%q", gotBody, gotType)
	}
	if gotName != res.PublicID || !strings.HasPrefix(res.PublicID, "products/flores/rosas/") {
		t.Fatalf("unexpected object name %q / %q", gotName, res.PublicID)
	}
	if res.Original != "https://storage.googleapis.com/bucket/"+res.PublicID {
		t.Fatalf("unexpected public url %q", res.Original)
	}
}

func TestUploadSurfacesErrorStatus(t *testing.T) {
	t.Parallel()

	client := newTestClient(func(*http.Request) *http.Response {
		return response(http.StatusForbidden, "denied")
	})
	_, err := client.Upload(context.Background(), storage.File{
		OriginalName: "a.png",
		ContentType:  "image/png",
		Body:         strings.NewReader("x"),
	}, "products")
	if err == nil || !strings.Contains(err.Error(), "denied") {
		t.Fatalf("expected upload error with body, got %v", err)
	}
}

func TestDeleteObjectSuccessAndNotFound(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusNoContent, http.StatusNotFound} {
		client := newTestClient(func(req *http.Request) *http.Response {
			if req.Method != http.MethodDelete {
				t.Errorf("expected DELETE, got %s", req.Method)
			}
			if !strings.HasSuffix(req.URL.EscapedPath(), "/o/products%2Ffile.png") {
				t.Errorf("unexpected path %s", req.URL.EscapedPath())
			}
			return response(status, "")
		})
		if err := client.Delete(context.Background(), "products/file.png"); err != nil {
			t.Fatalf("Delete with status %d: %v", status, err)
		}
	}
}

func TestDeleteObjectFailure(t *testing.T) {
	t.Parallel()

	client := newTestClient(func(*http.Request) *http.Response {
		return response(http.StatusInternalServerError, "")
	})
	if err := client.Delete(context.Background(), "products/file.png"); err == nil {
		t.Fatal("expected delete failure")
	}
}

func TestPingChecksBucket(t *testing.T) {
	t.Parallel()

	client := newTestClient(func(req *http.Request) *http.Response {
		if req.URL.Query().Get("maxResults") != "1" {
			t.Errorf("expected maxResults=1, got %s", req.URL.RawQuery)
		}
		return response(http.StatusOK, `{}`)
	})
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	if err := (&Client{}).Ping(context.Background()); err == nil {
		t.Fatal("expected uninitialized client error")
	}
}

func TestSignAssertionUsesRS256(t *testing.T) {
	t.Parallel()

	key := mustGenerateKey(t)
	now := time.Now()
	assertion, err := signAssertion("signer@example.com", key, tokenEndpoint, now)
	if err != nil {
		t.Fatalf("signAssertion: %v", err)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(assertion, claims, func(token *jwt.Token) (interface{}, error) {
		return &key.PublicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithAudience(tokenEndpoint))
	if err != nil {
		t.Fatalf("parse assertion: %v", err)
	}
	if claims["iss"] != "signer@example.com" || claims["scope"] != scope {
		t.Fatalf("unexpected claims %v", claims)
	}
}

func TestServiceAccountTokenSourceExchangesAssertion(t *testing.T) {
	t.Parallel()

	key := mustGenerateKey(t)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	creds, _ := json.Marshal(serviceAccount{
		ClientEmail: "signer@example.com",
		PrivateKey:  string(pemKey),
		TokenURI:    "https://oauth.example.com/token",
	})

	httpClient := &http.Client{Transport: roundTripFunc(func(req *http.Request) *http.Response {
		if err := req.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if req.PostForm.Get("grant_type") != "urn:ietf:params:oauth:grant-type:jwt-bearer" {
			t.Errorf("unexpected grant type %q", req.PostForm.Get("grant_type"))
		}
		if strings.Count(req.PostForm.Get("assertion"), ".") != 2 {
			t.Errorf("assertion is not a jwt")
		}
		return response(http.StatusOK, `{"access_token":"abc","expires_in":3600}`)
	})}

	ts, err := newServiceAccountTokenSource(httpClient, string(creds))
	if err != nil {
		t.Fatalf("newServiceAccountTokenSource: %v", err)
	}
	token, err := ts.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if token != "abc" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestServiceAccountTokenSourceRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	if _, err := newServiceAccountTokenSource(http.DefaultClient, `{"client_email":"x"}`); err == nil {
		t.Fatal("expected missing key error")
	}
	if _, err := newServiceAccountTokenSource(http.DefaultClient, `{"client_email":"x","private_key":"nope"}`); err == nil {
		t.Fatal("expected invalid key error")
	}
}

func mustGenerateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}
	return key
}
