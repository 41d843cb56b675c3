package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"reimburse/internal/core"
	ports "reimburse/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Options configures a Client.
type Options struct {
	ReimbursementsSpreadsheetID string
	// MembersSpreadsheetID defaults to ReimbursementsSpreadsheetID.
	MembersSpreadsheetID string
	ReimbursementsSheet  string
	MembersSheet         string

	ServiceAccountJSON string
	ServiceAccountFile string
}

type Client struct {
	svc                 *gsheet.Service
	reimbursementsID    string
	membersID           string
	reimbursementsSheet string
	membersSheet        string
}

// Ensure interface conformance
var _ ports.Source = (*Client)(nil)

// New creates a Sheets client authenticated with a service account.
func New(ctx context.Context, opts Options) (*Client, error) {
	c, err := newClient(opts)
	if err != nil {
		return nil, err
	}
	svc, err := newSheetsService(ctx, opts.ServiceAccountJSON, opts.ServiceAccountFile)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	c.svc = svc
	return c, nil
}

func newClient(opts Options) (*Client, error) {
	reimbursementsID := strings.TrimSpace(opts.ReimbursementsSpreadsheetID)
	if reimbursementsID == "" {
		return nil, errors.New("missing reimbursements spreadsheet id")
	}
	membersID := strings.TrimSpace(opts.MembersSpreadsheetID)
	if membersID == "" {
		membersID = reimbursementsID
	}
	rmbSheet := strings.TrimSpace(opts.ReimbursementsSheet)
	if rmbSheet == "" {
		rmbSheet = "Reimbursements"
	}
	memberSheet := strings.TrimSpace(opts.MembersSheet)
	if memberSheet == "" {
		memberSheet = "Members"
	}
	return &Client{
		reimbursementsID:    reimbursementsID,
		membersID:           membersID,
		reimbursementsSheet: rmbSheet,
		membersSheet:        memberSheet,
	}, nil
}

// newSheetsService initializes a read-only Sheets Service from service
// account credentials, falling back to GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context, credentialsJSON, credentialsFile string) (*gsheet.Service, error) {
	credentialsJSON = strings.TrimSpace(credentialsJSON)
	credentialsFile = strings.TrimSpace(credentialsFile)
	if credentialsJSON == "" && credentialsFile == "" {
		credentialsFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var creds []byte
	switch {
	case credentialsJSON != "":
		slog.DebugContext(ctx, "Using inline service account credentials")
		creds = []byte(credentialsJSON)
	case credentialsFile != "":
		slog.DebugContext(ctx, "Reading service account credentials", "path", credentialsFile)
		data, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		creds = data
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(creds),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope),
		goption.WithHTTPClient(newHTTPClient()))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// newHTTPClient bounds connection and request time for the Sheets API.
func newHTTPClient() *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 30 * time.Second,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{Transport: transport, Timeout: 60 * time.Second}
}

// MemberRows reads the member sheet.
func (c *Client) MemberRows(ctx context.Context) ([]core.Row, error) {
	values, err := c.readRange(ctx, c.membersID, ports.MemberLayout.A1Range(c.membersSheet))
	if err != nil {
		return nil, fmt.Errorf("read members: %w", err)
	}
	return ports.MemberLayout.Rows(values), nil
}

// ReimbursementRows reads the reimbursement request sheet.
func (c *Client) ReimbursementRows(ctx context.Context) ([]core.Row, error) {
	values, err := c.readRange(ctx, c.reimbursementsID, ports.ReimbursementLayout.A1Range(c.reimbursementsSheet))
	if err != nil {
		return nil, fmt.Errorf("read reimbursements: %w", err)
	}
	return ports.ReimbursementLayout.Rows(values), nil
}

func (c *Client) readRange(ctx context.Context, spreadsheetID, rng string) ([][]any, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rng).
		ValueRenderOption("FORMATTED_VALUE").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	values := make([][]any, len(resp.Values))
	for i, row := range resp.Values {
		values[i] = []any(row)
	}
	slog.InfoContext(ctx, "Read sheets range", "range", rng, "rows", len(values))
	return values, nil
}
