// Package ldap adapts the go-ldap client to the directory.Searcher contract.
package ldap

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/go-ldap/ldap/v3"

	"github.com/kailas-cloud/adrecon/internal/directory"
	"github.com/kailas-cloud/adrecon/internal/domain"
	"github.com/kailas-cloud/adrecon/internal/domain/filter"
)

const (
	defaultPageSize = 1000
	defaultTimeout  = 60 * time.Second
)

// Config holds LDAP connection settings.
type Config struct {
	URL      string // e.g. ldap://dc01.example.com:389 or ldaps://...
	BindDN   string // empty for anonymous bind
	Password string
	StartTLS bool
	PageSize uint32
	Timeout  time.Duration
}

// Client performs scoped computer-object searches against one LDAP server.
// A fresh connection is dialed per call and closed before returning.
type Client struct {
	cfg Config
}

// NewClient validates the config and creates a Client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("ldap url is required")
	}
	if _, err := url.Parse(cfg.URL); err != nil {
		return nil, fmt.Errorf("invalid ldap url %q: %w", cfg.URL, err)
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{cfg: cfg}, nil
}

// SearchComputerNames runs one paged subtree search under searchBase for
// computer objects matching f and returns their name attribute values.
// The whole call (dial, bind, search) is bounded by the configured timeout
// or the context deadline, whichever is sooner.
func (c *Client) SearchComputerNames(ctx context.Context, searchBase string, f filter.Computer) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	conn, op, err := c.dial(ctx)
	if err != nil {
		return nil, &directory.Error{
			Op:  op,
			Err: fmt.Errorf("%w: %w", domain.ErrDirectoryUnavailable, err),
		}
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetTimeout(time.Until(deadline))
	}

	req := ldap.NewSearchRequest(
		searchBase,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, 0, false,
		CompileFilter(f),
		[]string{"name"},
		nil,
	)

	res, err := conn.SearchWithPaging(req, c.cfg.PageSize)
	if err != nil {
		return nil, &directory.Error{Op: directory.OpSearch, Err: classify(err)}
	}

	names := make([]string, 0, len(res.Entries))
	for _, entry := range res.Entries {
		if name := entry.GetAttributeValue("name"); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// dial connects, optionally upgrades to TLS, and binds. On failure the
// second return value names the failed operation.
func (c *Client) dial(ctx context.Context) (*ldap.Conn, string, error) {
	dialer := &net.Dialer{Timeout: c.cfg.Timeout}
	if deadline, ok := ctx.Deadline(); ok {
		dialer.Timeout = time.Until(deadline)
	}

	conn, err := ldap.DialURL(c.cfg.URL, ldap.DialWithDialer(dialer))
	if err != nil {
		return nil, directory.OpDial, err
	}

	if c.cfg.StartTLS {
		if err := conn.StartTLS(&tls.Config{ServerName: serverName(c.cfg.URL)}); err != nil {
			conn.Close()
			return nil, directory.OpDial, fmt.Errorf("starttls: %w", err)
		}
	}

	if c.cfg.BindDN != "" {
		if err := conn.Bind(c.cfg.BindDN, c.cfg.Password); err != nil {
			conn.Close()
			return nil, directory.OpBind, err
		}
	}
	return conn, "", nil
}

// CompileFilter renders the typed predicate as an LDAP filter string:
// (&(objectCategory=computer)(objectClass=computer)(cn=<allow>*)(!(cn=<deny>*))...).
func CompileFilter(f filter.Computer) string {
	s := "(&(objectCategory=computer)(objectClass=computer)"
	s += "(cn=" + ldap.EscapeFilter(f.AllowPrefix()) + "*)"
	for _, d := range f.DenyPrefixes() {
		s += "(!(cn=" + ldap.EscapeFilter(d) + "*))"
	}
	return s + ")"
}

// classify maps an LDAP search failure onto the domain error taxonomy.
// Connection-level failures mean the directory is unavailable; result codes
// from a responsive server mean the query itself failed.
func classify(err error) error {
	if ldap.IsErrorAnyOf(err,
		ldap.ErrorNetwork,
		ldap.LDAPResultUnavailable,
		ldap.LDAPResultServerDown,
		ldap.LDAPResultConnectError,
	) {
		return fmt.Errorf("%w: %w", domain.ErrDirectoryUnavailable, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrQueryFailed, err)
}

func serverName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
