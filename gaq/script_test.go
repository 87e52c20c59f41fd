package gaq

import (
	"strings"
	"testing"

	"github.com/dop251/goja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// browserStub is the minimal DOM the snippets touch. goja has no
// toGMTString, which browsers alias to toUTCString.
const browserStub = `
Date.prototype.toGMTString = Date.prototype.toUTCString;
var inserted = [];
var document = {
	cookie: "__utmz=1.2.3.4.utmcsr=(direct)|utmccn=(direct)|utmcmd=(none)",
	domain: "www.example.com",
	location: {protocol: "https:"},
	createElement: function(tag) { return {tagName: tag}; },
	getElementsByTagName: function() {
		return [{parentNode: {insertBefore: function(node) { inserted.push(node); }}}];
	}
};
`

func runSnippet(t *testing.T, html string) *goja.Runtime {
	t.Helper()
	require.True(t, strings.HasPrefix(html, scriptOpen))
	require.True(t, strings.HasSuffix(html, scriptClose))
	js := strings.TrimSuffix(strings.TrimPrefix(html, scriptOpen), scriptClose)

	vm := goja.New()
	_, err := vm.RunString(browserStub)
	require.NoError(t, err)
	_, err = vm.RunString(js)
	require.NoError(t, err, "generated code must execute")
	return vm
}

func evalString(t *testing.T, vm *goja.Runtime, expr string) string {
	t.Helper()
	v, err := vm.RunString(expr)
	require.NoError(t, err)
	return v.String()
}

// queuedCommands returns the array commands pushed to _gaq as JSON, skipping
// queued functions.
func queuedCommands(t *testing.T, vm *goja.Runtime) string {
	return evalString(t, vm, `JSON.stringify(_gaq.filter(function(c) { return typeof c !== "function"; }))`)
}

func TestBasicInitCodeExecutes(t *testing.T) {
	tr := newTracker(t, "UA-123")
	require.NoError(t, tr.SetCustomVar(1, "gender", "male", ScopePage))
	require.NoError(t, tr.SetCustomVar(2, "plan", "pro", ScopeVisitor))

	vm := runSnippet(t, tr.BasicInitCode())

	assert.Equal(t,
		`[["_setAccount","UA-123"],["_setCustomVar",1,"gender","male",3],["_setCustomVar",2,"plan","pro",1],["_trackPageview"]]`,
		queuedCommands(t, vm))
	assert.Equal(t, "https://ssl.google-analytics.com/ga.js", evalString(t, vm, "inserted[0].src"))
	assert.Equal(t, "true", evalString(t, vm, "inserted[0].async"))
}

func TestManualCampaignInitCodeRewritesCookie(t *testing.T) {
	tr := newTracker(t, "UA-123")
	code, err := tr.ManualCampaignInitCode("google", "cpc", "summer", "ad1", "shoes", "http://ref.example.com/")
	require.NoError(t, err)

	vm := runSnippet(t, code)
	assert.Equal(t,
		`[["_setAccount","UA-123"],["_setReferrerOverride","http://ref.example.com/"],["_trackPageview"]]`,
		queuedCommands(t, vm))
	assert.Equal(t, "1", evalString(t, vm, `String(_gaq.filter(function(c) { return typeof c === "function"; }).length)`))

	// ga.js would run the queued function once loaded.
	_, err = vm.RunString(`_gaq.filter(function(c) { return typeof c === "function"; })[0]()`)
	require.NoError(t, err)

	cookie := evalString(t, vm, "document.cookie")
	assert.Contains(t, cookie, "__utmz=1.2.3.4.utmcsr=google|utmccn=summer|utmcmd=cpc|utmctr=shoes|utmcct=ad1;")
	assert.Contains(t, cookie, "domain=.example.com")
	assert.Contains(t, queuedCommands(t, vm), `["_initData"]`)
}

func TestEventAndSocialCodeExecute(t *testing.T) {
	tr := newTracker(t, "UA-123")
	event, err := EventCode("Videos", "Play", "Intro", 5, false)
	require.NoError(t, err)
	social, err := tr.TrackSocialCode("Facebook", "Like", "", "/blog/post", false)
	require.NoError(t, err)
	pageview, err := tr.VirtualPageviewCode("/virtual", false)
	require.NoError(t, err)

	vm := runSnippet(t, scriptOpen+"var _gaq = [];"+event+social+pageview+scriptClose)
	assert.Equal(t,
		`[["_trackEvent","Videos","Play","Intro",5],["_trackSocial","Facebook","Like","undefined","/blog/post"],["_trackPageview","/virtual"]]`,
		queuedCommands(t, vm))
}
