// storefrontctl is a CLI tool for exercising storefront cart and checkout flows.
// Each command performs a single operation, making it composable for scripts.
//
// Commands:
//
//	storefrontctl add -url URL -sku SKU [-qty N] [-cart ID]
//	storefrontctl cart -url URL -cart ID
//	storefrontctl sync -url URL -cart ID -item SKU=QTY [-item SKU=QTY ...]
//	storefrontctl readiness -url URL -cart ID
//	storefrontctl checkout -url URL -cart ID -email ADDR -payment CODE [-shipping] [-method carrier:method] [-token T]
//	storefrontctl login -graphql URL -email ADDR -password PW
//	storefrontctl products -graphql URL [-page-size N] [-page N]
//	storefrontctl product -graphql URL -key URL_KEY
//	storefrontctl orders -graphql URL -token T [-page-size N] [-page N]
//	storefrontctl address -graphql URL -cart ID -token T -id N [-billing]
//
// Examples:
//
//	CART=$(storefrontctl add -url http://localhost:8080 -sku 24-MB01 -q)
//	storefrontctl readiness -url http://localhost:8080 -cart "$CART"
//	storefrontctl checkout -url http://localhost:8080 -cart "$CART" -email a@example.com -payment checkmo -shipping
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"magento-storefront/internal/magento"
	"magento-storefront/internal/model"
	"magento-storefront/internal/outcome"
	"magento-storefront/internal/session"
)

var client = &http.Client{
	Timeout: 30 * time.Second,
	// Form posts answer with 303; the redirect target is reported, not followed.
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

// Global flags (apply to all commands)
var (
	baseURL string
	cartID  string
	token   string
	quiet   bool
	noColor bool
	verbose bool
)

// ANSI color codes
var (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

func init() {
	if os.Getenv("NO_COLOR") != "" {
		disableColors()
	}
}

func disableColors() {
	colorReset, colorRed, colorGreen, colorYellow = "", "", "", ""
	colorBlue, colorCyan, colorGray, colorBold = "", "", "", ""
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "add":
		runAdd(args)
	case "cart":
		runCart(args)
	case "sync":
		runSync(args)
	case "readiness":
		runReadiness(args)
	case "checkout":
		runCheckout(args)
	case "login":
		runLogin(args)
	case "products":
		runProducts(args)
	case "product":
		runProduct(args)
	case "orders":
		runOrders(args)
	case "address":
		runAddress(args)
	case "-h", "-help", "--help", "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `storefrontctl - storefront cart and checkout test tool

Usage:
  storefrontctl <command> [options]

Commands:
  add        Add a SKU to a cart (creates the cart when -cart is omitted)
  cart       Show cart contents
  sync       Replace cart contents with the given items
  readiness  Show checkout readiness and blocking reasons
  checkout   Place the order
  login      Exchange customer credentials for a token (talks to Magento directly)
  products   List catalog SKUs (talks to Magento directly)
  product    Show one product by URL key (talks to Magento directly)
  orders     List a customer's orders (talks to Magento directly)
  address    Copy a saved customer address onto a cart (talks to Magento directly)

Examples:
  # Create a cart and capture its id
  CART=$(storefrontctl add -url http://localhost:8080 -sku 24-MB01 -q)

  # Make the cart hold exactly two of one SKU
  storefrontctl sync -url http://localhost:8080 -cart "$CART" -item 24-MB01=2

  # Place the order with a test US address
  storefrontctl checkout -url http://localhost:8080 -cart "$CART" -email a@example.com -payment checkmo -shipping

Run 'storefrontctl <command> -h' for command-specific options.
`)
}

// newFlagSet registers the flags every command shares.
func newFlagSet(name, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&baseURL, "url", "http://localhost:8080", "Storefront base URL")
	fs.StringVar(&cartID, "cart", "", "Cart ID")
	fs.BoolVar(&quiet, "q", false, "Quiet mode - only output the key result")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&verbose, "v", false, "Verbose - show full request/response")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: storefrontctl %s\n\nOptions:\n", usage)
		fs.PrintDefaults()
	}
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) {
	fs.Parse(args)
	if noColor {
		disableColors()
	}
}

func requireCart(fs *flag.FlagSet) {
	if cartID == "" {
		fs.Usage()
		os.Exit(1)
	}
}

// =============================================================================
// CART COMMANDS
// =============================================================================

func runAdd(args []string) {
	fs := newFlagSet("add", "add -sku SKU [-qty N] [options]")
	var sku string
	var qty float64
	fs.StringVar(&sku, "sku", "", "Product SKU (required)")
	fs.Float64Var(&qty, "qty", 1, "Quantity")
	parseFlags(fs, args)

	if sku == "" {
		fs.Usage()
		os.Exit(1)
	}

	resp, err := doJSON("POST", "/cart/items", map[string]interface{}{"sku": sku, "quantity": qty})
	if err != nil {
		fatal("Failed to add item: %v", err)
	}
	reportCart(resp.body, "Item added")
}

func runCart(args []string) {
	fs := newFlagSet("cart", "cart -cart ID [options]")
	parseFlags(fs, args)
	requireCart(fs)

	resp, err := doJSON("GET", "/cart", nil)
	if err != nil {
		fatal("Failed to get cart: %v", err)
	}
	reportCart(resp.body, "Cart retrieved")
}

// itemFlags collects repeated -item SKU=QTY values.
type itemFlags []map[string]interface{}

func (f *itemFlags) String() string { return fmt.Sprint(len(*f)) }

func (f *itemFlags) Set(v string) error {
	sku, qty, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(sku) == "" {
		return fmt.Errorf("want SKU=QTY, got %q", v)
	}
	n, err := strconv.ParseFloat(qty, 64)
	if err != nil {
		return fmt.Errorf("quantity of %s: %w", sku, err)
	}
	*f = append(*f, map[string]interface{}{"sku": sku, "quantity": n})
	return nil
}

func runSync(args []string) {
	fs := newFlagSet("sync", "sync -item SKU=QTY [-item SKU=QTY ...] [options]")
	items := itemFlags{}
	fs.Var(&items, "item", "Desired SKU=QTY (repeatable; QTY 0 removes)")
	parseFlags(fs, args)

	resp, err := doJSON("PUT", "/cart", map[string]interface{}{"items": items})
	if err != nil {
		fatal("Failed to sync cart: %v", err)
	}
	reportCart(resp.body, "Cart synced")
}

func reportCart(body map[string]interface{}, title string) {
	id, _ := body["cart_id"].(string)
	if quiet {
		fmt.Println(id)
		return
	}
	printSuccess("%s", title)
	if id != "" {
		fmt.Printf("  Cart: %s%s%s\n", colorCyan, id, colorReset)
	}

	c, _ := body["cart"].(map[string]interface{})
	items, _ := c["items"].([]interface{})
	for _, it := range items {
		m, ok := it.(map[string]interface{})
		if !ok {
			continue
		}
		fmt.Printf("    - %s x%v %s%s%s\n", m["sku"], m["quantity"], colorGray, formatMoney(m["line_total"]), colorReset)
	}
	if total := formatMoney(c["grand_total"]); total != "" {
		fmt.Printf("  Total: %s%s%s\n", colorGreen, total, colorReset)
	}
}

// =============================================================================
// CHECKOUT COMMANDS
// =============================================================================

func runReadiness(args []string) {
	fs := newFlagSet("readiness", "readiness -cart ID [options]")
	parseFlags(fs, args)
	requireCart(fs)

	resp, err := doJSON("GET", "/checkout/readiness", nil)
	if err != nil {
		fatal("Failed to get readiness: %v", err)
	}

	ready, _ := resp.body["ready"].(bool)
	if quiet {
		fmt.Println(ready)
		return
	}
	if ready {
		printSuccess("Cart is ready for checkout")
	} else {
		printWarning("Cart is not ready")
	}
	if reasons, ok := resp.body["reasons"].([]interface{}); ok {
		for _, r := range reasons {
			fmt.Printf("    - %v\n", r)
		}
	}
	if methods, ok := resp.body["available_shipping_methods"].([]interface{}); ok && len(methods) > 0 {
		fmt.Printf("  %sShipping methods:%s\n", colorYellow, colorReset)
		for _, m := range methods {
			if opt, ok := m.(map[string]interface{}); ok {
				fmt.Printf("    - %s:%s %s (%s)\n", opt["carrier_code"], opt["method_code"], opt["method_title"], formatMoney(opt["amount"]))
			}
		}
	}
}

func runCheckout(args []string) {
	fs := newFlagSet("checkout", "checkout -cart ID -email ADDR -payment CODE [options]")
	var email, payment, method string
	var withShipping, asForm bool
	fs.StringVar(&email, "email", "test@example.com", "Customer email")
	fs.StringVar(&payment, "payment", "checkmo", "Payment method code")
	fs.StringVar(&method, "method", "", "Shipping method as carrier:method")
	fs.BoolVar(&withShipping, "shipping", false, "Send a test US shipping address")
	fs.BoolVar(&asForm, "form", false, "Submit as an HTML form post instead of JSON")
	fs.StringVar(&token, "token", "", "Customer token from 'login' (checkout as that customer)")
	parseFlags(fs, args)
	requireCart(fs)

	fields := map[string]string{
		"email":           email,
		"payment_method":  payment,
		"shipping_method": method,
	}
	if withShipping {
		fields["shipping_firstname"] = "Test"
		fields["shipping_lastname"] = "Buyer"
		fields["shipping_street_1"] = "11501 Domain Dr"
		fields["shipping_city"] = "Austin"
		fields["shipping_postcode"] = "78758"
		fields["shipping_country_code"] = "US"
		fields["shipping_telephone"] = "5125551234"
		fields["shipping_state"] = "TX"
	}

	var resp *response
	var err error
	if asForm {
		form := url.Values{}
		for k, v := range fields {
			if v != "" {
				form.Set(k, v)
			}
		}
		resp, err = do("POST", "/checkout/place-order", "application/x-www-form-urlencoded", []byte(form.Encode()))
	} else {
		resp, err = doJSON("POST", "/checkout/place-order", fields)
	}
	if err != nil {
		fatal("Failed to place order: %v", err)
	}

	o, err := outcome.Parse(resp.header.Get(outcome.Header))
	if err != nil {
		fatal("Invalid %s header: %v", outcome.Header, err)
	}

	if quiet {
		if o.Success {
			fmt.Println(o.Order)
		} else {
			fmt.Println(o.Reason)
		}
		if !o.Success {
			os.Exit(2)
		}
		return
	}

	if o.Success {
		printSuccess("Order placed!")
		fmt.Printf("  Order: %s%s%s\n", colorGreen, o.Order, colorReset)
	} else {
		printError("Checkout rejected: %s", o.Reason)
		if msg, ok := resp.body["message"].(string); ok {
			fmt.Printf("  %s\n", msg)
		}
	}
	if loc := resp.header.Get("Location"); loc != "" {
		fmt.Printf("  Redirect: %s%s%s\n", colorBlue, loc, colorReset)
	}
	if !o.Success {
		os.Exit(2)
	}
}

// =============================================================================
// MAGENTO COMMANDS
// =============================================================================

func newMagentoClient(graphqlURL string) *magento.Client {
	c, err := magento.New(magento.Config{GraphQLURL: graphqlURL, Timeout: 30 * time.Second})
	if err != nil {
		fatal("Failed to create Magento client: %v", err)
	}
	return c
}

func runLogin(args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	var graphqlURL, email, password string
	fs.StringVar(&graphqlURL, "graphql", "http://localhost:8281/graphql", "Magento GraphQL URL")
	fs.StringVar(&email, "email", "", "Customer email (required)")
	fs.StringVar(&password, "password", "", "Customer password (required)")
	fs.BoolVar(&quiet, "q", false, "Quiet mode - only output the token")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored output")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: storefrontctl login -email ADDR -password PW [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	parseFlags(fs, args)

	if email == "" || password == "" {
		fs.Usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tok, err := newMagentoClient(graphqlURL).GenerateCustomerToken(ctx, email, password)
	if err != nil {
		fatal("Login failed: %v", err)
	}
	if quiet {
		fmt.Println(tok)
		return
	}
	printSuccess("Logged in as %s", email)
	fmt.Printf("  Token: %s%s%s\n", colorCyan, tok, colorReset)
}

func runProducts(args []string) {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	var graphqlURL string
	var pageSize, page int
	fs.StringVar(&graphqlURL, "graphql", "http://localhost:8281/graphql", "Magento GraphQL URL")
	fs.IntVar(&pageSize, "page-size", 12, "Products per page")
	fs.IntVar(&page, "page", 1, "Page number")
	fs.BoolVar(&quiet, "q", false, "Quiet mode - only output SKUs")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored output")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: storefrontctl products [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	parseFlags(fs, args)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := newMagentoClient(graphqlURL).ListProducts(ctx, pageSize, page)
	if err != nil {
		fatal("Failed to list products: %v", err)
	}
	for _, p := range result.Products {
		if quiet {
			fmt.Println(p.SKU)
			continue
		}
		stock := colorGreen + "in stock"
		if !p.InStock {
			stock = colorRed + "out of stock"
		}
		fmt.Printf("  %s%-16s%s %s %s%s%s\n", colorBold, p.SKU, colorReset, p.Name, stock, colorReset, formatPrice(p.Price))
	}
	if !quiet {
		printInfo("Page %d of %d (%d products)", result.CurrentPage, result.TotalPages, result.TotalCount)
	}
}

func runProduct(args []string) {
	fs := flag.NewFlagSet("product", flag.ExitOnError)
	var graphqlURL, urlKey string
	fs.StringVar(&graphqlURL, "graphql", "http://localhost:8281/graphql", "Magento GraphQL URL")
	fs.StringVar(&urlKey, "key", "", "Product URL key (required)")
	fs.BoolVar(&quiet, "q", false, "Quiet mode - only output the SKU")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored output")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: storefrontctl product -key URL_KEY [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	parseFlags(fs, args)

	if urlKey == "" {
		fs.Usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p, err := newMagentoClient(graphqlURL).GetProductByURLKey(ctx, urlKey)
	if err != nil {
		fatal("Failed to fetch product: %v", err)
	}
	if p == nil {
		fatal("No product with URL key %q", urlKey)
	}
	if quiet {
		fmt.Println(p.SKU)
		return
	}
	fmt.Printf("%s%s%s %s%s\n", colorBold, p.SKU, colorReset, p.Name, formatPrice(p.Price))
	if p.InStock {
		fmt.Printf("  %sin stock%s\n", colorGreen, colorReset)
	} else {
		fmt.Printf("  %sout of stock%s\n", colorRed, colorReset)
	}
	if p.Description != "" {
		fmt.Printf("  %s%s%s\n", colorGray, p.Description, colorReset)
	}
}

func runOrders(args []string) {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	var graphqlURL string
	var pageSize, page int
	fs.StringVar(&graphqlURL, "graphql", "http://localhost:8281/graphql", "Magento GraphQL URL")
	fs.StringVar(&token, "token", "", "Customer token from login (required)")
	fs.IntVar(&pageSize, "page-size", 10, "Orders per page")
	fs.IntVar(&page, "page", 1, "Page number")
	fs.BoolVar(&quiet, "q", false, "Quiet mode - only output order numbers")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored output")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: storefrontctl orders -token T [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	parseFlags(fs, args)

	if token == "" {
		fs.Usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := newMagentoClient(graphqlURL).GetCustomerOrders(ctx, token, pageSize, page)
	if err != nil {
		if magento.IsUnauthorized(err) {
			fatal("Customer token rejected, run login again")
		}
		fatal("Failed to list orders: %v", err)
	}
	for _, o := range result.Orders {
		if quiet {
			fmt.Println(o.Number)
			continue
		}
		fmt.Printf("  %s%-12s%s %s %s%s%s%s\n", colorBold, o.Number, colorReset, o.OrderDate, colorCyan, o.Status, colorReset, formatPrice(o.GrandTotal))
	}
	if !quiet {
		printInfo("Page %d of %d (%d orders)", result.CurrentPage, result.TotalPages, result.TotalCount)
	}
}

func runAddress(args []string) {
	fs := flag.NewFlagSet("address", flag.ExitOnError)
	var graphqlURL string
	var addressID int
	var billing bool
	fs.StringVar(&graphqlURL, "graphql", "http://localhost:8281/graphql", "Magento GraphQL URL")
	fs.StringVar(&cartID, "cart", "", "Cart ID (required)")
	fs.StringVar(&token, "token", "", "Customer token from login (required)")
	fs.IntVar(&addressID, "id", 0, "Customer address id (required)")
	fs.BoolVar(&billing, "billing", false, "Also use the address for billing")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored output")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: storefrontctl address -cart ID -token T -id N [options]\n\nOptions:\n")
		fs.PrintDefaults()
	}
	parseFlags(fs, args)

	if cartID == "" || token == "" || addressID <= 0 {
		fs.Usage()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := newMagentoClient(graphqlURL)
	if err := c.SetShippingAddressFromCustomerAddress(ctx, cartID, addressID, token); err != nil {
		fatal("Failed to set shipping address: %v", err)
	}
	printSuccess("Shipping address %d applied to cart %s", addressID, cartID)
	if !billing {
		return
	}
	if err := c.SetBillingAddressFromCustomerAddress(ctx, cartID, addressID, token); err != nil {
		fatal("Failed to set billing address: %v", err)
	}
	printSuccess("Billing address %d applied to cart %s", addressID, cartID)
}

func formatPrice(m *model.Money) string {
	if m == nil {
		return ""
	}
	return " " + m.String()
}

// =============================================================================
// HTTP HELPERS
// =============================================================================

type response struct {
	status int
	header http.Header
	body   map[string]interface{}
}

func doJSON(method, path string, body interface{}) (*response, error) {
	var reqJSON []byte
	if body != nil {
		var err error
		reqJSON, err = json.MarshalIndent(body, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling request: %w", err)
		}
	}
	return do(method, path, "application/json", reqJSON)
}

// do sends the request with the cart and customer cookies set from flags.
// Checkout rejections are returned as responses; other 4xx/5xx answers are
// errors.
func do(method, path, contentType string, payload []byte) (*response, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, strings.TrimRight(baseURL, "/")+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if cartID != "" {
		req.AddCookie(&http.Cookie{Name: session.CartCookie, Value: cartID})
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: session.CustomerTokenCookie, Value: token})
	}

	if !quiet {
		printRequest(method, path, payload, contentType)
	}

	start := time.Now()
	resp, err := client.Do(req)
	duration := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if !quiet {
		printResponse(resp.StatusCode, respBody, duration)
	}

	out := &response{status: resp.StatusCode, header: resp.Header, body: map[string]interface{}{}}
	if resp.StatusCode >= 400 && resp.Header.Get(outcome.Header) == "" {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}
	if len(respBody) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(respBody, &out.body); err != nil {
			return nil, fmt.Errorf("parsing response: %w", err)
		}
	}
	return out, nil
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

func printRequest(method, path string, body []byte, contentType string) {
	fmt.Printf("\n%s▶ REQUEST%s %s%s %s%s\n", colorYellow, colorReset, colorBold, method, path, colorReset)
	if body == nil {
		return
	}
	if contentType == "application/json" {
		printJSON(body, "  ")
		return
	}
	fmt.Printf("  %s\n", body)
}

func printResponse(status int, body []byte, duration time.Duration) {
	statusColor := colorGreen
	if status >= 400 {
		statusColor = colorRed
	}
	fmt.Printf("\n%s◀ RESPONSE%s %s%d%s (%v)\n", colorCyan, colorReset, statusColor, status, colorReset, duration)
	if len(body) > 0 {
		printJSON(body, "  ")
	}
}

func printJSON(data []byte, prefix string) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, prefix, "  "); err != nil {
		fmt.Printf("%s%s\n", prefix, string(data))
		return
	}

	output := pretty.String()
	if !verbose {
		lines := strings.Split(output, "\n")
		if len(lines) > 30 {
			lines = append(lines[:25], fmt.Sprintf("%s  %s(%d more lines, use -v for full output)%s", prefix, colorGray, len(lines)-25, colorReset))
			output = strings.Join(lines, "\n")
		}
	}
	fmt.Println(output)
}

func printSuccess(format string, args ...interface{}) {
	if !quiet {
		fmt.Printf("%s✓ %s%s\n", colorGreen, fmt.Sprintf(format, args...), colorReset)
	}
}

func printError(format string, args ...interface{}) {
	fmt.Printf("%s✗ %s%s\n", colorRed, fmt.Sprintf(format, args...), colorReset)
}

func printWarning(format string, args ...interface{}) {
	fmt.Printf("%s⚠ %s%s\n", colorYellow, fmt.Sprintf(format, args...), colorReset)
}

func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Printf("%s→ %s%s\n", colorGray, fmt.Sprintf(format, args...), colorReset)
	}
}

// formatMoney renders a {value, currency} object from the JSON API.
func formatMoney(v interface{}) string {
	m, ok := v.(map[string]interface{})
	if !ok {
		return ""
	}
	value := fmt.Sprint(m["value"])
	if s, ok := m["value"].(string); ok {
		value = s
	}
	if cur, ok := m["currency"].(string); ok && cur != "" {
		return value + " " + cur
	}
	return value
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s✗ %s%s\n", colorRed, fmt.Sprintf(format, args...), colorReset)
	os.Exit(1)
}
