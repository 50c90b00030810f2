// Package console implements the interactive menu loop: guest menu, user
// menu, and the admin console. Handlers receive the session explicitly;
// there is no package-level state.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"finman/internal/core"
	"finman/internal/export"
	"finman/internal/log"
	"finman/internal/notify"
	"finman/internal/services"
)

// Session identifies who is driving the menu. A nil User means guest.
type Session struct {
	User *core.User
}

// Deps bundles everything the controller talks to.
type Deps struct {
	Users        *services.UserService
	Transactions *services.TransactionService
	Budgets      *services.BudgetService
	Goals        *services.GoalService
	Admin        *services.AdminService
	Notifier     notify.Notifier
	Exporter     export.ReportWriter
	Logger       *log.Logger
}

// Controller reads commands line by line and dispatches to the services.
// A parse failure aborts only the action being entered, never the loop.
type Controller struct {
	in  *bufio.Scanner
	out io.Writer
	eof bool

	users        *services.UserService
	transactions *services.TransactionService
	budgets      *services.BudgetService
	goals        *services.GoalService
	admin        *services.AdminService

	notifier notify.Notifier
	exporter export.ReportWriter

	logger *log.Logger
}

func New(in io.Reader, out io.Writer, deps Deps) *Controller {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentConsole)
	}
	return &Controller{
		in:           bufio.NewScanner(in),
		out:          out,
		users:        deps.Users,
		transactions: deps.Transactions,
		budgets:      deps.Budgets,
		goals:        deps.Goals,
		admin:        deps.Admin,
		notifier:     deps.Notifier,
		exporter:     deps.Exporter,
		logger:       logger,
	}
}

// Run drives the menu loop until the user quits or input ends.
func (c *Controller) Run(ctx context.Context) {
	session := Session{}
	for !c.eof {
		if session.User == nil {
			if quit := c.guestMenu(ctx, &session); quit {
				return
			}
		} else {
			c.userMenu(ctx, &session)
		}
	}
}

func (c *Controller) prompt(label string) string {
	fmt.Fprint(c.out, label)
	if !c.in.Scan() {
		c.eof = true
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *Controller) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Controller) guestMenu(ctx context.Context, session *Session) (quit bool) {
	c.printf("\n--- Menu ---\n")
	c.printf("1. Register\n")
	c.printf("2. Login\n")
	c.printf("3. Quit\n")
	choice := c.prompt("Choose an action: ")
	if c.eof {
		return true
	}

	switch choice {
	case "1":
		c.register(ctx)
	case "2":
		c.login(ctx, session)
	case "3":
		c.printf("Goodbye!\n")
		return true
	default:
		c.printf("Invalid choice.\n")
	}
	return false
}

func (c *Controller) userMenu(ctx context.Context, session *Session) {
	c.printf("\n--- User menu ---\n")
	c.printf("1. Add transaction\n")
	c.printf("2. Edit profile\n")
	c.printf("3. Delete account\n")
	c.printf("4. Set budget\n")
	c.printf("5. Set goal\n")
	c.printf("6. Show transactions\n")
	c.printf("7. Show statistics\n")
	c.printf("8. Goals\n")
	c.printf("9. Export monthly report\n")
	if session.User.Admin {
		c.printf("10. Admin console\n")
	}
	c.printf("0. Logout\n")
	choice := c.prompt("Choose an action: ")
	if c.eof {
		return
	}

	switch choice {
	case "1":
		c.addTransaction(ctx, session)
	case "2":
		c.editProfile(ctx, session)
	case "3":
		c.deleteAccount(ctx, session)
	case "4":
		c.setBudget(ctx, session)
	case "5":
		c.setGoal(ctx, session)
	case "6":
		c.showTransactions(ctx, session)
	case "7":
		c.showStatistics(ctx, session)
	case "8":
		c.goalsMenu(ctx, session)
	case "9":
		c.exportReport(ctx, session)
	case "10":
		if session.User.Admin {
			c.adminMenu(ctx, session)
		} else {
			c.printf("Invalid choice.\n")
		}
	case "0":
		session.User = nil
		c.printf("You have been logged out.\n")
	default:
		c.printf("Invalid choice.\n")
	}
}

func (c *Controller) register(ctx context.Context) {
	name := c.prompt("Name: ")
	email := c.prompt("Email: ")
	password := c.prompt("Password: ")
	if c.eof {
		return
	}

	u, err := c.users.Register(ctx, name, email, password, false)
	switch {
	case errors.Is(err, core.ErrEmailTaken):
		c.printf("Could not register: email is already in use.\n")
		return
	case err != nil:
		c.printf("Could not register: %v.\n", err)
		return
	}

	c.printf("Registration successful! You can log in now.\n")
	if err := c.notifier.Send(ctx, u.Email, "Welcome", "Your account has been created."); err != nil {
		c.logger.WarnContext(ctx, "Welcome notification failed", log.FieldError, err, log.FieldEmail, u.Email)
	}
}

func (c *Controller) login(ctx context.Context, session *Session) {
	email := c.prompt("Email: ")
	password := c.prompt("Password: ")
	if c.eof {
		return
	}

	u, err := c.users.Login(ctx, email, password)
	if errors.Is(err, core.ErrInvalidCredentials) {
		c.printf("Invalid email or password.\n")
		return
	}
	if err != nil {
		c.printf("Login failed: %v.\n", err)
		return
	}
	session.User = u
	c.printf("Welcome back, %s!\n", u.Name)
}

func (c *Controller) addTransaction(ctx context.Context, session *Session) {
	amount, ok := c.promptMoney("Amount: ")
	if !ok {
		return
	}
	category := c.prompt("Category: ")
	description := c.prompt("Description: ")
	rawType := strings.ToUpper(c.prompt("Type (INCOME/EXPENSE): "))
	if c.eof {
		return
	}

	typ := core.TransactionType(rawType)
	if !typ.Valid() {
		c.printf("Invalid transaction type. Use 'INCOME' or 'EXPENSE'.\n")
		return
	}

	_, err := c.transactions.Create(ctx, session.User.ID, amount, category, description, time.Now(), typ)
	if err != nil {
		c.printf("Could not add transaction: %v.\n", err)
		return
	}
	c.printf("Transaction added.\n")

	if typ == core.Expense {
		c.warnIfBudgetExceeded(ctx, session.User)
	}
}

func (c *Controller) warnIfBudgetExceeded(ctx context.Context, user *core.User) {
	period := core.CurrentPeriod()
	exceeded, err := c.budgets.IsExceeded(ctx, user.ID, period)
	if err != nil {
		c.logger.WarnContext(ctx, "Budget check failed", log.FieldError, err, log.FieldUserID, user.ID)
		return
	}
	if !exceeded {
		return
	}
	c.printf("Warning: your budget for %s is exceeded.\n", period)
	body := fmt.Sprintf("Your expenses for %s exceed the configured budget.", period)
	if err := c.notifier.Send(ctx, user.Email, "Budget exceeded", body); err != nil {
		c.logger.WarnContext(ctx, "Budget notification failed", log.FieldError, err, log.FieldEmail, user.Email)
	}
}

func (c *Controller) editProfile(ctx context.Context, session *Session) {
	name := c.prompt("New name (leave blank to keep current): ")
	email := c.prompt("New email (leave blank to keep current): ")
	password := c.prompt("New password (leave blank to keep current): ")
	if c.eof {
		return
	}

	patch := core.UserPatch{Name: &name, Email: &email, Password: &password}
	updated, err := c.users.Update(ctx, session.User.ID, patch)
	if errors.Is(err, core.ErrEmailTaken) {
		c.printf("Could not update profile: email is already in use.\n")
		return
	}
	if err != nil {
		c.printf("Could not update profile: %v.\n", err)
		return
	}
	if !updated {
		c.printf("Nothing to update.\n")
		return
	}

	if fresh, err := c.users.ByID(ctx, session.User.ID); err == nil {
		session.User = fresh
	}
	c.printf("Profile updated.\n")
}

func (c *Controller) deleteAccount(ctx context.Context, session *Session) {
	ok, err := c.users.Delete(ctx, session.User.ID)
	if err != nil {
		c.printf("Could not delete account: %v.\n", err)
		return
	}
	if !ok {
		c.printf("Could not delete account.\n")
		return
	}
	session.User = nil
	c.printf("Account deleted.\n")
}

func (c *Controller) setBudget(ctx context.Context, session *Session) {
	amount, ok := c.promptMoney("Monthly budget: ")
	if !ok {
		return
	}
	_, err := c.budgets.Create(ctx, session.User.ID, amount, core.CurrentPeriod())
	if err != nil {
		c.printf("Could not set budget: %v.\n", err)
		return
	}
	c.printf("Budget set.\n")
}

func (c *Controller) setGoal(ctx context.Context, session *Session) {
	target, ok := c.promptMoney("Savings target: ")
	if !ok {
		return
	}
	raw := c.prompt("Deadline (YYYY-MM-DD): ")
	if c.eof {
		return
	}
	deadline, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.printf("Invalid date format.\n")
		return
	}

	_, err = c.goals.Create(ctx, session.User.ID, "Savings goal", target, deadline)
	if errors.Is(err, core.ErrPastDeadline) {
		c.printf("Could not set goal: deadline is in the past.\n")
		return
	}
	if err != nil {
		c.printf("Could not set goal: %v.\n", err)
		return
	}
	c.printf("Goal set.\n")
}

func (c *Controller) showTransactions(ctx context.Context, session *Session) {
	list, err := c.transactions.ListByUser(ctx, session.User.ID)
	if err != nil {
		c.printf("Could not list transactions: %v.\n", err)
		return
	}
	if len(list) == 0 {
		c.printf("No transactions yet.\n")
		return
	}
	for _, t := range list {
		c.printf("ID: %d, Date: %s, Type: %s, Category: %s, Amount: %s, Description: %s\n",
			t.ID, t.Date.Format("2006-01-02"), t.Type, t.Category, t.Amount, t.Description)
	}
}

func (c *Controller) showStatistics(ctx context.Context, session *Session) {
	period := core.CurrentPeriod()
	summary, _, err := c.summarize(ctx, session.User.ID, period)
	if err != nil {
		c.printf("Could not compute statistics: %v.\n", err)
		return
	}

	c.printf("Statistics for %s:\n", period)
	c.printf("Total income: %s\n", summary.Income)
	c.printf("Total expenses: %s\n", summary.Expenses)
	for _, ca := range summary.ByCategory {
		c.printf("  %s: %s\n", ca.Category, ca.Amount)
	}
	c.printf("Current balance: %s\n", summary.Balance)
	if summary.BudgetExceeded {
		c.printf("Budget for %s is exceeded.\n", period)
	}
}

func (c *Controller) goalsMenu(ctx context.Context, session *Session) {
	goals, err := c.goals.ListByUser(ctx, session.User.ID)
	if err != nil {
		c.printf("Could not list goals: %v.\n", err)
		return
	}
	if len(goals) == 0 {
		c.printf("No goals yet.\n")
		return
	}
	for _, g := range goals {
		progress, err := c.goals.Progress(ctx, g.ID)
		if err != nil {
			c.printf("Could not compute progress: %v.\n", err)
			return
		}
		c.printf("ID: %d, Name: %s, Target: %s, Saved: %s, Deadline: %s, Progress: %.1f%%\n",
			g.ID, g.Name, g.TargetAmount, g.CurrentAmount, g.Deadline.Format("2006-01-02"), progress)
	}

	raw := c.prompt("Goal ID to add progress (leave blank to return): ")
	if c.eof || raw == "" {
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.printf("Invalid ID format.\n")
		return
	}
	amount, ok := c.promptMoney("Amount to add: ")
	if !ok {
		return
	}
	added, err := c.goals.AddProgress(ctx, id, amount)
	if err != nil {
		c.printf("Could not add progress: %v.\n", err)
		return
	}
	if !added {
		c.printf("Goal not found.\n")
		return
	}
	c.printf("Progress added.\n")
}

func (c *Controller) exportReport(ctx context.Context, session *Session) {
	period := core.CurrentPeriod()
	if raw := c.prompt("Period (YYYY-MM, leave blank for current): "); raw != "" {
		parsed, err := core.ParsePeriod(raw)
		if err != nil {
			c.printf("Invalid period format.\n")
			return
		}
		period = parsed
	}
	if c.eof {
		return
	}

	summary, transactions, err := c.summarize(ctx, session.User.ID, period)
	if err != nil {
		c.printf("Could not build report: %v.\n", err)
		return
	}

	ref, err := c.exporter.Append(ctx, export.Report{
		UserEmail:    session.User.Email,
		Summary:      summary,
		Transactions: transactions,
	})
	if err != nil {
		c.printf("Could not export report: %v.\n", err)
		return
	}
	c.printf("Report for %s exported (%s).\n", period, ref)
	c.logger.InfoContext(ctx, "Report exported",
		log.FieldUserID, session.User.ID,
		log.FieldPeriod, period.String(),
		log.FieldExportRef, ref)
}

// summarize builds the statistics view for one period: period-scoped income
// and expenses, per-category expenses sorted by name, lifetime balance, and
// the budget flag.
func (c *Controller) summarize(ctx context.Context, userID int64, period core.Period) (core.PeriodSummary, []core.Transaction, error) {
	start, end := period.Start(), period.End()

	income, err := c.transactions.TotalIncome(ctx, userID, start, end)
	if err != nil {
		return core.PeriodSummary{}, nil, err
	}
	expenses, err := c.transactions.TotalExpenses(ctx, userID, start, end)
	if err != nil {
		return core.PeriodSummary{}, nil, err
	}
	balance, err := c.transactions.Balance(ctx, userID)
	if err != nil {
		return core.PeriodSummary{}, nil, err
	}
	byCategory, err := c.transactions.ExpensesByCategory(ctx, userID, start, end)
	if err != nil {
		return core.PeriodSummary{}, nil, err
	}
	exceeded, err := c.budgets.IsExceeded(ctx, userID, period)
	if err != nil {
		return core.PeriodSummary{}, nil, err
	}
	list, err := c.transactions.ListByUserInRange(ctx, userID, start, end)
	if err != nil {
		return core.PeriodSummary{}, nil, err
	}

	categories := make([]core.CategoryAmount, 0, len(byCategory))
	for name, amount := range byCategory {
		categories = append(categories, core.CategoryAmount{Category: name, Amount: amount})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Category < categories[j].Category
	})

	return core.PeriodSummary{
		Period:         period,
		Income:         income,
		Expenses:       expenses,
		Balance:        balance,
		ByCategory:     categories,
		BudgetExceeded: exceeded,
	}, list, nil
}

func (c *Controller) promptMoney(label string) (core.Money, bool) {
	raw := c.prompt(label)
	if c.eof {
		return core.Money{}, false
	}
	amount, err := core.ParseMoney(raw)
	if err != nil {
		c.printf("Invalid amount format.\n")
		return core.Money{}, false
	}
	return amount, true
}

func (c *Controller) promptUserID(label string) (int64, bool) {
	raw := c.prompt(label)
	if c.eof {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.printf("Invalid ID format.\n")
		return 0, false
	}
	return id, true
}
