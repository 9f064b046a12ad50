package cli

import "context"

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.auth.Logout(ctx); err != nil {
		return err
	}

	c.io.Println("✓ Logged out.")
	c.io.Println("Local content and pending changes are kept on this device.")
	return nil
}
