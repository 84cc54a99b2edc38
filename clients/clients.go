package clients

// Client is a named application registered with the identity provider
type Client struct {
	Name string `json:"name"` // e.g. "@blinkmobile/client-cli"
	ID   string `json:"id"`
}

// Known clients, used when no remote configuration is available
var knownClients = map[string]string{
	"@blinkmobile/buildbot-cli": "ygMsfkHRV0SfP2fA2NLTIASvxnALEovh",
	"@blinkmobile/client-cli":   "KMhiBTVSWwevBd9GJsWxLyODLyEkYOCs",
}
