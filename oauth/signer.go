package oauth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// OAuth control parameters and literals.
const (
	ParamConsumerKey     = "oauth_consumer_key"
	ParamNonce           = "oauth_nonce"
	ParamSignature       = "oauth_signature"
	ParamSignatureMethod = "oauth_signature_method"
	ParamTimestamp       = "oauth_timestamp"
	ParamVersion         = "oauth_version"

	SignatureMethod = "HMAC-SHA1"
	Version         = "1.0"

	// NonceBytes is the amount of entropy read for every nonce.
	NonceBytes = 16
)

// ErrNonce is returned when the entropy source fails while generating a nonce.
var ErrNonce = errors.New("oauth: failed to generate nonce")

// Signer signs requests with a consumer key and secret. A Signer holds no
// per-request state and is safe for concurrent use.
type Signer struct {
	consumerKey    string
	consumerSecret string
	nonce          func() (string, error)
	now            func() time.Time
}

// Option configures a Signer.
type Option func(*Signer)

// WithNonceFunc replaces the nonce source. Intended for tests that need a
// fixed nonce.
func WithNonceFunc(f func() (string, error)) Option {
	return func(s *Signer) {
		if f != nil {
			s.nonce = f
		}
	}
}

// WithClock replaces the clock used for oauth_timestamp.
func WithClock(f func() time.Time) Option {
	return func(s *Signer) {
		if f != nil {
			s.now = f
		}
	}
}

// NewSigner creates a Signer for the given consumer credentials.
func NewSigner(consumerKey, consumerSecret string, opts ...Option) *Signer {
	s := &Signer{
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		nonce:          NewNonce,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// String never includes the consumer secret.
func (s *Signer) String() string {
	return fmt.Sprintf("oauth.Signer{consumer_key: %s, consumer_secret: [REDACTED]}", s.consumerKey)
}

// SignedRequest is a fully signed URL ready to dispatch. It carries a single-use
// nonce and must not be reused.
type SignedRequest struct {
	Method    string
	URL       string
	Nonce     string
	Timestamp int64
	Signature string
}

// Sign merges the OAuth control parameters into params and signs the result.
// params is not modified. The returned values include oauth_signature.
func (s *Signer) Sign(method, endpoint string, params url.Values) (string, url.Values, error) {
	nonce, err := s.nonce()
	if err != nil {
		return "", nil, fmt.Errorf("sign request: %w", err)
	}

	all := make(url.Values, len(params)+6)
	for k, vs := range params {
		all[k] = append([]string(nil), vs...)
	}
	all.Set(ParamConsumerKey, s.consumerKey)
	all.Set(ParamTimestamp, strconv.FormatInt(s.now().Unix(), 10))
	all.Set(ParamNonce, nonce)
	all.Set(ParamSignatureMethod, SignatureMethod)
	all.Set(ParamVersion, Version)

	signature := Signature(method, endpoint, all, s.consumerSecret)
	all.Set(ParamSignature, signature)

	return signature, all, nil
}

// BuildSignedURL signs params for endpoint and appends the form-encoded query
// string, oauth_signature included.
func (s *Signer) BuildSignedURL(method, endpoint string, params url.Values) (*SignedRequest, error) {
	signature, all, err := s.Sign(method, endpoint, params)
	if err != nil {
		return nil, err
	}

	ts, _ := strconv.ParseInt(all.Get(ParamTimestamp), 10, 64)
	return &SignedRequest{
		Method:    strings.ToUpper(method),
		URL:       endpoint + "?" + all.Encode(),
		Nonce:     all.Get(ParamNonce),
		Timestamp: ts,
		Signature: signature,
	}, nil
}

// Signature computes base64(HMAC-SHA1(Encode(secret)+"&", baseString)) over
// params exactly as given. oauth_signature, if present, is excluded.
func Signature(method, endpoint string, params url.Values, consumerSecret string) string {
	key := Encode(consumerSecret) + "&"
	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(BaseString(method, endpoint, params)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify reports whether query carries a valid oauth_signature for the
// request. It is the check the remote store performs.
func Verify(method, endpoint string, query url.Values, consumerSecret string) bool {
	got := query.Get(ParamSignature)
	if got == "" {
		return false
	}
	want := Signature(method, endpoint, query, consumerSecret)
	return hmac.Equal([]byte(got), []byte(want))
}

// BaseString builds METHOD&Encode(endpoint)&Encode(parameterString).
func BaseString(method, endpoint string, params url.Values) string {
	return strings.ToUpper(method) + "&" + Encode(endpoint) + "&" + Encode(ParameterString(params))
}

// ParameterString sorts params byte-wise by key, then by value, and joins the
// percent-encoded pairs with "&". oauth_signature is skipped.
func ParameterString(params url.Values) string {
	type pair struct{ k, v string }

	pairs := make([]pair, 0, len(params))
	for k, vs := range params {
		if k == ParamSignature {
			continue
		}
		if len(vs) == 0 {
			pairs = append(pairs, pair{k, ""})
			continue
		}
		for _, v := range vs {
			pairs = append(pairs, pair{k, v})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].k != pairs[j].k {
			return pairs[i].k < pairs[j].k
		}
		return pairs[i].v < pairs[j].v
	})

	var sb strings.Builder
	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(Encode(p.k))
		sb.WriteByte('=')
		sb.WriteString(Encode(p.v))
	}
	return sb.String()
}

// NewNonce returns NonceBytes of crypto/rand entropy, hex-encoded.
func NewNonce() (string, error) {
	b := make([]byte, NonceBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNonce, err)
	}
	return hex.EncodeToString(b), nil
}
