package session

import "time"

func (c *Controller) SetNow(now func() time.Time) {
	c.now = now
}
