package backend

import "github.com/adminlayers/gcadm/internal/api"

// Live is the Service over the real HTTP API.
type Live struct {
	c *api.Client
}

// NewLive wraps an authenticated API client.
func NewLive(c *api.Client) *Live {
	return &Live{c: c}
}

func (l *Live) Users() Users                 { return l.c.Users() }
func (l *Live) Groups() Groups               { return l.c.Groups() }
func (l *Live) Queues() Queues               { return l.c.Queues() }
func (l *Live) Routing() Routing             { return l.c.Routing() }
func (l *Live) Conversations() Conversations { return l.c.Conversations() }
