// Package gaq renders tracking snippets for the legacy ga.js (_gaq queue) tag.
//
// Values are interpolated into JavaScript source unescaped, except campaign
// fields which are URL-encoded. Only pass developer-controlled input.
package gaq

import (
	"fmt"
	"io"
	"strings"
)

// Scope is the level a custom variable is attached to.
type Scope int

const (
	ScopeVisitor Scope = 1
	ScopeSession Scope = 2
	ScopePage    Scope = 3
)

// CustomVariable is a registered _setCustomVar annotation.
type CustomVariable struct {
	Index int
	Name  string
	Value string
	Scope Scope
}

// Tracker holds an account id and the custom variables registered for it.
// It is not safe for concurrent mutation.
type Tracker struct {
	accountID  string
	customVars []CustomVariable
}

// New returns a Tracker for the given account id, trimmed of surrounding
// whitespace.
func New(accountID string) (*Tracker, error) {
	id := strings.TrimSpace(accountID)
	if id == "" {
		return nil, invalid("account id", accountID)
	}
	return &Tracker{accountID: id}, nil
}

// AccountID returns the trimmed account id.
func (t *Tracker) AccountID() string {
	return t.accountID
}

// CustomVars returns a copy of the registered variables in registration order.
func (t *Tracker) CustomVars() []CustomVariable {
	out := make([]CustomVariable, len(t.customVars))
	copy(out, t.customVars)
	return out
}

// SetCustomVar registers a custom variable. It must be called before the init
// code is rendered for the variable to be included. A zero scope means
// ScopePage. Slot uniqueness is the caller's concern.
func (t *Tracker) SetCustomVar(index int, name, value string, scope Scope) error {
	if index == 0 {
		return invalid("index", fmt.Sprint(index))
	}
	if name == "" {
		return invalid("name", name)
	}
	if value == "" {
		return invalid("value", value)
	}
	if scope == 0 {
		scope = ScopePage
	}
	t.customVars = append(t.customVars, CustomVariable{
		Index: index,
		Name:  name,
		Value: value,
		Scope: scope,
	})
	return nil
}

// BasicInitCode sets the account, the registered custom variables, tracks a
// page view and loads ga.js.
func (t *Tracker) BasicInitCode() string {
	var b strings.Builder
	b.WriteString(t.queueInit())
	t.writeCustomVars(&b)
	b.WriteString(trackPageview)
	b.WriteString(gaLoader)
	return scriptOpen + b.String() + scriptClose
}

// ManualCampaignInitCode is BasicInitCode with the __utmz campaign cookie
// overwritten from the given values, and optionally the referrer overridden.
// Use it only when campaign data is passed manually; otherwise use
// BasicInitCode.
//
// The queued setter receives term before content. term is not required.
func (t *Tracker) ManualCampaignInitCode(source, medium, campaign, content, term, referrer string) (string, error) {
	var b strings.Builder
	b.WriteString(t.queueInit())

	if referrer != "" {
		code, err := referrerOverrideCode(referrer)
		if err != nil {
			return "", err
		}
		b.WriteString(code)
	}

	t.writeCustomVars(&b)

	code, err := campaignValuesCode(source, medium, campaign, content, term)
	if err != nil {
		return "", err
	}
	b.WriteString(code)

	b.WriteString(trackPageview)
	b.WriteString(gaLoader)
	return scriptOpen + b.String() + scriptClose, nil
}

// VirtualPageviewCode tracks a page view for url instead of the current
// location.
func (t *Tracker) VirtualPageviewCode(url string, wrap bool) (string, error) {
	if url == "" {
		return "", invalid("url", url)
	}
	code := fmt.Sprintf(trackPageviewURL, url)
	if wrap {
		return wrapInScript(code)
	}
	return code, nil
}

// WriteVirtualPageview writes the virtual page view code to w.
func (t *Tracker) WriteVirtualPageview(w io.Writer, url string, wrap bool) error {
	code, err := t.VirtualPageviewCode(url, wrap)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, code)
	return err
}

// TrackSocialCode records a social interaction such as a Like or a Tweet.
// target defaults to the current location in ga.js; when pagePath is given
// without a target, target is sent as undefined.
func (t *Tracker) TrackSocialCode(network, action, target, pagePath string, wrap bool) (string, error) {
	if network == "" {
		return "", invalid("network", network)
	}
	if action == "" {
		return "", invalid("social action", action)
	}

	var b strings.Builder
	fmt.Fprintf(&b, trackSocialPrefix, network, action)
	if target != "" && pagePath == "" {
		fmt.Fprintf(&b, ",'%s'", target)
	}
	if pagePath != "" {
		if target == "" {
			target = "undefined"
		}
		fmt.Fprintf(&b, ",'%s', '%s'", target, pagePath)
	}
	b.WriteString(pushClose)

	if wrap {
		return wrapInScript(b.String())
	}
	return b.String(), nil
}

func (t *Tracker) queueInit() string {
	return fmt.Sprintf(queueInitFormat, t.accountID)
}

func (t *Tracker) writeCustomVars(b *strings.Builder) {
	for _, cv := range t.customVars {
		fmt.Fprintf(b, setCustomVarFormat, cv.Index, cv.Name, cv.Value, cv.Scope)
	}
}

func referrerOverrideCode(referrer string) (string, error) {
	trimmed := strings.TrimSpace(referrer)
	if trimmed == "" {
		return "", invalid("referrer", referrer)
	}
	return fmt.Sprintf(referrerOverrideFormat, trimmed), nil
}

func campaignValuesCode(source, medium, campaign, content, term string) (string, error) {
	source = urlencode(source)
	medium = urlencode(medium)
	campaign = urlencode(campaign)
	content = urlencode(content)
	term = urlencode(term)

	switch {
	case campaign == "":
		return "", invalid("utm_campaign", campaign)
	case source == "":
		return "", invalid("utm_source", source)
	case medium == "":
		return "", invalid("utm_medium", medium)
	case content == "":
		return "", invalid("utm_content", content)
	}

	return utmzLibrary + fmt.Sprintf(setCampValuesFormat, source, medium, campaign, term, content), nil
}

func wrapInScript(code string) (string, error) {
	if code == "" {
		return "", invalid("code", code)
	}
	return scriptOpen + code + scriptClose, nil
}
