package console

import (
	"context"
	"errors"

	"finman/internal/core"
	"finman/internal/log"
)

func (c *Controller) adminMenu(ctx context.Context, session *Session) {
	for !c.eof {
		c.printf("\n--- Admin console ---\n")
		c.printf("1. List users\n")
		c.printf("2. View user transactions\n")
		c.printf("3. Block user\n")
		c.printf("4. Delete user\n")
		c.printf("5. Back\n")
		choice := c.prompt("Choose an action: ")
		if c.eof {
			return
		}

		switch choice {
		case "1":
			c.listUsers(ctx)
		case "2":
			c.viewUserTransactions(ctx)
		case "3":
			c.blockUser(ctx)
		case "4":
			c.deleteUser(ctx, session)
		case "5":
			return
		default:
			c.printf("Invalid choice.\n")
		}
	}
}

func (c *Controller) listUsers(ctx context.Context) {
	users, err := c.admin.Users(ctx)
	if err != nil {
		c.printf("Could not list users: %v.\n", err)
		return
	}
	for _, u := range users {
		c.printf("ID: %d, Name: %s, Email: %s, Blocked: %t\n", u.ID, u.Name, u.Email, u.Blocked)
	}
}

func (c *Controller) viewUserTransactions(ctx context.Context) {
	id, ok := c.promptUserID("User ID: ")
	if !ok {
		return
	}
	list, err := c.admin.UserTransactions(ctx, id)
	if err != nil {
		c.printf("Could not list transactions: %v.\n", err)
		return
	}
	for _, t := range list {
		c.printf("ID: %d, Amount: %s, Category: %s, Description: %s, Date: %s, Type: %s\n",
			t.ID, t.Amount, t.Category, t.Description, t.Date.Format("2006-01-02"), t.Type)
	}
}

func (c *Controller) blockUser(ctx context.Context) {
	id, ok := c.promptUserID("User ID to block: ")
	if !ok {
		return
	}
	blocked, err := c.admin.Block(ctx, id)
	if err != nil {
		c.printf("Could not block user: %v.\n", err)
		return
	}
	if !blocked {
		c.printf("Could not block user.\n")
		return
	}
	c.printf("User blocked.\n")
}

// deleteUser removes the account and then sweeps the account's transactions,
// since the store delete does not cascade. Blocked users stay deletable only
// by unblocking first.
func (c *Controller) deleteUser(ctx context.Context, session *Session) {
	id, ok := c.promptUserID("User ID to delete: ")
	if !ok {
		return
	}
	if id == 0 {
		return
	}

	if !session.User.Admin {
		c.printf("You do not have permission to delete users.\n")
		return
	}

	target, err := c.users.ByID(ctx, id)
	if err != nil && !errors.Is(err, core.ErrNotFound) {
		c.printf("Could not look up user: %v.\n", err)
		return
	}
	if target != nil && target.Blocked {
		c.printf("User is blocked and cannot be deleted.\n")
		return
	}

	deleted, err := c.admin.Delete(ctx, id)
	if err != nil {
		c.printf("Could not delete user: %v.\n", err)
		return
	}
	if !deleted {
		c.printf("Could not delete user.\n")
		return
	}

	transactions, err := c.admin.UserTransactions(ctx, id)
	if err != nil {
		c.logger.WarnContext(ctx, "Transaction sweep failed", log.FieldError, err, log.FieldUserID, id)
	} else {
		for _, t := range transactions {
			if _, err := c.transactions.Delete(ctx, t.ID); err != nil {
				c.logger.WarnContext(ctx, "Transaction sweep failed", log.FieldError, err, log.FieldUserID, id)
				break
			}
		}
	}

	c.printf("User deleted.\n")
}
