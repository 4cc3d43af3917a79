package upstream

import (
	"bytes"
	"context"
	"encoding/xml"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"club-roster/internal/domain/member"
	"club-roster/internal/infra/metrics"
	"club-roster/internal/pkg/config"
	"club-roster/internal/pkg/errs"

	"golang.org/x/net/html/charset"
)

// RegistryClient reads the member address book from the club registry's
// XML export.
type RegistryClient struct {
	http        httpClient
	baseURL     string
	association string
	key         string
	addressBook string
	memberType  string
}

func NewRegistryClient(cfg config.RegistryConfig, logger *slog.Logger, m *metrics.Metrics) *RegistryClient {
	return &RegistryClient{
		http:        newHTTPClient(sourceRegistry, cfg.Timeout, cfg.UserAgent, logger, m),
		baseURL:     cfg.URL,
		association: cfg.Association,
		key:         cfg.Key,
		addressBook: cfg.AddressBook,
		memberType:  cfg.MemberFilter,
	}
}

type registryDocument struct {
	XMLName xml.Name         `xml:"conventus"`
	Members []registryMember `xml:"medlemmer>medlem"`
}

type registryMember struct {
	ID         string `xml:"id"`
	Name       string `xml:"navn"`
	Address    string `xml:"adresse1"`
	PostalCode string `xml:"postnr"`
	City       string `xml:"postnr_by"`
	Phone      string `xml:"mobil"`
	Email      string `xml:"email"`
	Birth      string `xml:"birth"`
	MemberType string `xml:"individuel1"`
	SportTag   string `xml:"individuel4"`
	Gender     string `xml:"koen"`
}

func (c *RegistryClient) requestURL() (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	setIf := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	setIf("forening", c.association)
	setIf("key", c.key)
	setIf("id", c.addressBook)
	setIf("type", c.memberType)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// FetchMembers returns every member in document order, nameless entries
// included, so the roster keeps one record per registry entry. An unparseable
// birth date is left empty.
func (c *RegistryClient) FetchMembers(ctx context.Context) ([]member.RegistryMember, error) {
	u, err := c.requestURL()
	if err != nil {
		return nil, errs.Wrap(err, "parse registry url")
	}

	body, err := c.http.get(ctx, "members", u, nil)
	if err != nil {
		return nil, err
	}

	doc, err := decodeRegistry(body)
	if err != nil {
		return nil, decodeErr(c.http.logger, sourceRegistry, "members", err)
	}

	out := make([]member.RegistryMember, 0, len(doc.Members))
	nameless := 0
	for _, m := range doc.Members {
		rm := m.toDomain()
		if rm.Name == "" {
			nameless++
		}
		out = append(out, rm)
	}
	if nameless > 0 {
		c.http.logger.Warn("Registry entries without a name", "count", nameless)
	}
	return out, nil
}

func decodeRegistry(body []byte) (registryDocument, error) {
	dec := xml.NewDecoder(bytes.NewReader(body))
	// the registry has been seen serving ISO-8859-1 declared documents
	dec.CharsetReader = charset.NewReaderLabel
	var doc registryDocument
	if err := dec.Decode(&doc); err != nil {
		return registryDocument{}, err
	}
	return doc, nil
}

func (m registryMember) toDomain() member.RegistryMember {
	return member.RegistryMember{
		RegistryID: strings.TrimSpace(m.ID),
		Name:       strings.TrimSpace(m.Name),
		Email:      strings.TrimSpace(m.Email),
		Address:    strings.TrimSpace(m.Address),
		PostalCode: strings.TrimSpace(m.PostalCode),
		City:       strings.TrimSpace(m.City),
		Phone:      strings.TrimSpace(m.Phone),
		BirthDate:  parseDate(m.Birth),
		MemberType: strings.TrimSpace(m.MemberType),
		SportTag:   strings.TrimSpace(m.SportTag),
		Gender:     member.ParseGender(m.Gender),
	}
}

func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil
	}
	return &t
}
