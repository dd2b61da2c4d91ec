package apiclient

import "strings"

const (
	// TokenKey is the key the bearer token is stored under.
	TokenKey = "token"
	// LoginPrefix marks paths that are sent without a bearer token.
	LoginPrefix = "/login"
)

// TokenSource is a synchronous key-value read. An empty string means absent.
type TokenSource interface {
	Get(key string) string
}

// Request describes an outgoing call. URL is relative to the base URL.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    any
}

// Clone returns a copy of r with its own headers map.
func (r Request) Clone() Request {
	headers := make(map[string]string, len(r.Headers))
	for k, v := range r.Headers {
		headers[k] = v
	}
	r.Headers = headers
	return r
}

// RequestHook transforms a request before it is sent. A returned error stops
// the call and reaches the caller unchanged.
type RequestHook func(Request) (Request, error)

// AuthorizeRequest attaches "Authorization: Bearer <token>" to every request
// whose URL does not start with /login, when tokens holds a non-empty token.
func AuthorizeRequest(tokens TokenSource) RequestHook {
	return func(req Request) (Request, error) {
		if strings.HasPrefix(req.URL, LoginPrefix) || tokens == nil {
			return req, nil
		}
		token := tokens.Get(TokenKey)
		if token == "" {
			return req, nil
		}
		out := req.Clone()
		out.Headers["Authorization"] = "Bearer " + token
		return out, nil
	}
}

func runHooks(req Request, hooks []RequestHook) (Request, error) {
	var err error
	for _, hook := range hooks {
		if req, err = hook(req); err != nil {
			return req, err
		}
	}
	return req, nil
}
