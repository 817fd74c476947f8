package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/phowdecayed/hacktiv8-laravel-final-fe/api"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/config"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/format"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/guards"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/logger"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/models"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/notify"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/session"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/stores"
	"github.com/phowdecayed/hacktiv8-laravel-final-fe/validation"
)

const usage = `Usage: shopfront <command> [arguments]

Commands:
  login <email> <password>       Authenticate and persist the session
  register <name> <email> <pw>   Create an account and log in
  logout                         End the session
  whoami                         Show the authenticated user

  products [search]              List products
  product <id>                   Show one product

  cart                           List cart contents
  cart add <product-id> [qty]    Add a product to the cart
  cart rm <item-id>              Remove a cart line
  cart clear                     Empty the cart
  cart validate                  Check cart lines against stock

  checkout [notes]               Validate stock and place the order
  orders [status]                List my orders
  order <id>                     Show one order

  admin dashboard                Dashboard statistics
  admin users                    List users
  admin transactions [status]    List all transactions
  admin audit                    List audit trail entries
`

// termNavigator satisfies the router interface by printing where the UI
// would have gone.
type termNavigator struct{}

func (termNavigator) Push(path string) {
	fmt.Fprintf(os.Stderr, "-> %s\n", path)
}

// app bundles the wired stores for the command handlers.
type app struct {
	auth         *stores.Auth
	cart         *stores.Cart
	orders       *stores.Orders
	products     *stores.Products
	users        *stores.Users
	transactions *stores.Transactions
	audit        *stores.Audit
	dashboard    *stores.Dashboard
	guard        *guards.Guard
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "shopfront: %v\n", err)
		os.Exit(1)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	cache, err := session.Open(cfg.SessionPath)
	if err != nil {
		logger.Log.Fatal("failed to open session store", zap.Error(err))
	}
	defer cache.Close()

	notes := notify.New()
	if err := notes.Subscribe(printNotification); err != nil {
		logger.Log.Fatal("failed to subscribe notifications", zap.Error(err))
	}

	client := api.NewClient(cfg.BaseURL, cfg.Timeout, api.WithRateLimit(cfg.RequestsPerSecond))
	nav := termNavigator{}

	auth := stores.NewAuth(client, cache, notes)
	cart := stores.NewCart(client, auth, notes)

	a := &app{
		auth:         auth,
		cart:         cart,
		orders:       stores.NewOrders(client, cart, notes, nav),
		products:     stores.NewProducts(client, notes),
		users:        stores.NewUsers(client, notes),
		transactions: stores.NewTransactions(client, notes),
		audit:        stores.NewAudit(client, notes),
		dashboard:    stores.NewDashboard(client),
		guard:        guards.New(auth, nav, notes),
	}

	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "shopfront: %s\n", api.Humanize(err))
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.cmdLogin(ctx, args)
	case "register":
		return a.cmdRegister(ctx, args)
	case "logout":
		a.auth.Logout(ctx)
		return nil
	case "whoami":
		return a.cmdWhoami(ctx)
	case "products":
		return a.cmdProducts(ctx, args)
	case "product":
		return a.cmdProduct(ctx, args)
	case "cart":
		return a.cmdCart(ctx, args)
	case "checkout":
		return a.cmdCheckout(ctx, args)
	case "orders":
		return a.cmdOrders(ctx, args)
	case "order":
		return a.cmdOrder(ctx, args)
	case "admin":
		return a.cmdAdmin(ctx, args)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: login <email> <password>")
	}
	if err := a.auth.Login(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s\n", a.auth.User().Name)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: register <name> <email> <password>")
	}
	form := validation.RegisterForm{
		Name:                 args[0],
		Email:                args[1],
		Password:             args[2],
		PasswordConfirmation: args[2],
	}
	if err := a.auth.Register(ctx, form); err != nil {
		return err
	}
	fmt.Printf("Registered as %s\n", a.auth.User().Name)
	return nil
}

func (a *app) cmdWhoami(ctx context.Context) error {
	if err := a.auth.CheckAuth(ctx); err != nil {
		return err
	}
	u := a.auth.User()
	if u == nil {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("%s <%s> role=%s\n", u.Name, u.Email, u.Role)
	return nil
}

func (a *app) cmdProducts(ctx context.Context, args []string) error {
	var filters models.ProductFilters
	if len(args) > 0 {
		filters.Search = args[0]
	}
	if err := a.products.Fetch(ctx, filters); err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTOCK")
	for _, p := range a.products.List() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", p.ID, p.Name, format.Rupiah(p.Price), p.Stock)
	}
	return w.Flush()
}

func (a *app) cmdProduct(ctx context.Context, args []string) error {
	id, err := argID(args, "product <id>")
	if err != nil {
		return err
	}
	p, err := a.products.FetchOne(ctx, id)
	if err != nil {
		return err
	}
	desc := ""
	if p.Description != nil {
		desc = *p.Description
	}
	fmt.Printf("%s\n%s\nPrice: %s  Stock: %d\n", p.Name, desc, format.Rupiah(p.Price), p.Stock)
	return nil
}

func (a *app) cmdCart(ctx context.Context, args []string) error {
	if err := a.guard.RequireAuth(ctx, "/cart"); err != nil {
		return err
	}

	sub := "list"
	if len(args) > 0 {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "list":
		if err := a.cart.Fetch(ctx); err != nil {
			return err
		}
		if a.cart.IsEmpty() {
			fmt.Println("Cart is empty")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ITEM\tPRODUCT\tQTY\tLINE TOTAL")
		for _, it := range a.cart.Items() {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", it.ID, it.Product.Name, it.Quantity, format.Rupiah(it.TotalPrice))
		}
		w.Flush()
		fmt.Printf("Total: %s\n", a.cart.FormattedTotal())
		return nil
	case "add":
		if len(args) < 1 {
			return fmt.Errorf("usage: cart add <product-id> [qty]")
		}
		productID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}
		qty := 1
		if len(args) > 1 {
			if qty, err = strconv.Atoi(args[1]); err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
		}
		return a.cart.Add(ctx, productID, qty)
	case "rm":
		itemID, err := argID(args, "cart rm <item-id>")
		if err != nil {
			return err
		}
		return a.cart.Remove(ctx, itemID)
	case "clear":
		return a.cart.Clear(ctx)
	case "validate":
		report, err := a.cart.ValidateStock(ctx)
		if err != nil {
			return err
		}
		if !a.cart.HasStockIssues() {
			fmt.Println("All cart items are in stock")
			return nil
		}
		for _, item := range report {
			if item.Oversold() {
				fmt.Printf("%s: wanted %d, only %d in stock\n", item.Name, item.CartQuantity, item.AvailableStock)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown cart subcommand %q", sub)
	}
}

func (a *app) cmdCheckout(ctx context.Context, args []string) error {
	if err := a.guard.RequireAuth(ctx, "/checkout"); err != nil {
		return err
	}
	if err := a.cart.Fetch(ctx); err != nil {
		return err
	}
	notes := ""
	if len(args) > 0 {
		notes = args[0]
	}
	order, err := a.orders.Create(ctx, notes)
	if err != nil {
		return err
	}
	fmt.Printf("Order #%d placed, total %s\n", order.ID, format.Rupiah(order.TotalAmount))
	return nil
}

func (a *app) cmdOrders(ctx context.Context, args []string) error {
	if err := a.guard.RequireAuth(ctx, "/orders"); err != nil {
		return err
	}
	filters := models.OrderFilters{Status: models.StatusAll, SortBy: "created_at", SortOrder: "desc"}
	if len(args) > 0 {
		filters.Status = args[0]
	}
	if err := a.orders.Fetch(ctx, filters); err != nil {
		return err
	}
	printTransactions(a.orders.List())
	return nil
}

func (a *app) cmdOrder(ctx context.Context, args []string) error {
	if err := a.guard.RequireAuth(ctx, "/orders"); err != nil {
		return err
	}
	id, err := argID(args, "order <id>")
	if err != nil {
		return err
	}
	t, err := a.orders.FetchOne(ctx, id)
	if err != nil {
		return err
	}
	fmt.Printf("Order #%d  %s  %s\n", t.ID, t.Status, format.Rupiah(t.TotalAmount))
	for _, item := range t.Items {
		name := fmt.Sprintf("product %d", item.ProductID)
		if item.Product != nil {
			name = item.Product.Name
		}
		fmt.Printf("  %dx %s @ %s\n", item.Quantity, name, format.Rupiah(item.Price))
	}
	if next := models.NextStatuses(t.Status); len(next) > 0 {
		fmt.Printf("Possible next statuses: %v\n", next)
	}
	return nil
}

func (a *app) cmdAdmin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: admin <dashboard|users|transactions|audit>")
	}
	sub := args[0]
	args = args[1:]

	if err := a.guard.RequireAdminRoute(ctx, "/admin/"+sub); err != nil {
		return err
	}

	switch sub {
	case "dashboard":
		if err := a.dashboard.FetchStats(ctx); err != nil {
			return err
		}
		s := a.dashboard.Stats()
		fmt.Printf("Users: %d  Products: %d  Transactions: %d\nRevenue: %s\n",
			s.TotalUsers, s.TotalProducts, s.TotalTransactions, format.Rupiah(s.TotalRevenue))
		return nil
	case "users":
		if err := a.users.Fetch(ctx, models.UserFilters{}); err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
		for _, u := range a.users.List() {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
		}
		return w.Flush()
	case "transactions":
		filters := models.TransactionFilters{Status: models.StatusAll}
		if len(args) > 0 {
			filters.Status = args[0]
		}
		if err := a.transactions.Fetch(ctx, filters); err != nil {
			return err
		}
		printTransactions(a.transactions.List())
		return nil
	case "audit":
		if err := a.audit.Fetch(ctx, models.AuditFilters{}); err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tACTION\tENTITY\tUSER\tWHEN")
		for _, e := range a.audit.List() {
			fmt.Fprintf(w, "%d\t%s\t%s %d\t%d\t%s\n", e.ID, e.Action, e.Entity, e.EntityID, e.UserID, e.CreatedAt)
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown admin subcommand %q", sub)
	}
}

func printTransactions(list []models.Transaction) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tITEMS\tTOTAL\tCREATED")
	for _, t := range list {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", t.ID, t.Status, t.ItemCount(), format.Rupiah(t.TotalAmount), t.CreatedAt)
	}
	w.Flush()
}

func printNotification(e notify.Event) {
	fmt.Fprintf(os.Stderr, "[%s] %s\n", e.Level, e.Message)
}

func argID(args []string, usage string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}
