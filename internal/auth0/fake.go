package auth0

import "context"

// FakeClient is a test implementation of Client. Tokens map to canned
// userinfo payloads; unknown tokens fail the same way the real endpoint does.
type FakeClient struct {
	Profiles map[string]*UserInfo // keyed by access token
}

func NewFakeClient() *FakeClient {
	return &FakeClient{
		Profiles: make(map[string]*UserInfo),
	}
}

func (c *FakeClient) GetUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	if info, ok := c.Profiles[accessToken]; ok {
		return info, nil
	}
	return nil, ErrUserInfoFailed
}

// SetProfile registers the userinfo payload returned for a token.
func (c *FakeClient) SetProfile(accessToken string, info *UserInfo) {
	c.Profiles[accessToken] = info
}
