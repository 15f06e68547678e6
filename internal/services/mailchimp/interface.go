package mailchimp

// ClientAPI defines the methods required to interact with the Mailchimp API.
// It mirrors the concrete client so it can be mocked in tests.
type ClientAPI interface {
	Upload(filePath string) (interface{}, error)
	ListFiles(count, offset int) (interface{}, error)
	ListCampaigns(count, offset int) (interface{}, error)
	Ping() (interface{}, error)
	Do(method, path string, body interface{}) (interface{}, error)
}
