package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"food-delivery/client/internal/api"
	"food-delivery/client/internal/cart"
	"food-delivery/config"
)

const usage = `usage: client [-api URL] <command> [flags]

commands:
  restaurants                          list restaurants
  search -q QUERY                      search by name or cuisine
  menu -id RESTAURANT                  show a restaurant's menu
  order -restaurant ID -items 101:2,104:1 -name NAME -phone PHONE -address ADDRESS
  get -id ORDER                        show an order
  status -id ORDER -set STATUS         change an order's status
  health                               check the service
`

func main() {
	cfg := config.Load()
	log := config.NewLogger("client", cfg.LogLevel)

	apiURL := flag.String("api", cfg.APIURL, "delivery service base URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	client := api.NewClient(*apiURL, &http.Client{Timeout: 10 * time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := run(ctx, log, client, os.Stdout, flag.Arg(0), flag.Args()[1:]); err != nil {
		log.WithError(err).WithField("command", flag.Arg(0)).Error("command failed")
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, log logrus.FieldLogger, client *api.Client, out io.Writer, command string, args []string) error {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	switch command {
	case "restaurants":
		restaurants, err := client.Restaurants(ctx)
		if err != nil {
			return err
		}
		printRestaurants(out, restaurants)

	case "search":
		query := fs.String("q", "", "search query")
		if err := fs.Parse(args); err != nil {
			return err
		}
		restaurants, err := client.Search(ctx, *query)
		if err != nil {
			return err
		}
		printRestaurants(out, restaurants)

	case "menu":
		id := fs.Int("id", 0, "restaurant id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		rest, menu, err := client.Menu(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s (%s) delivery %s, fee %s\n", rest.Name, rest.Cuisine, rest.DeliveryTime, rest.DeliveryFee)
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE")
		for _, item := range menu {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", item.ID, item.Name, item.Category, item.Price)
		}
		tw.Flush()

	case "order":
		restaurantID := fs.Int("restaurant", 0, "restaurant id")
		items := fs.String("items", "", "comma separated itemID:quantity pairs")
		var details cart.Details
		fs.StringVar(&details.Name, "name", "", "customer name")
		fs.StringVar(&details.Phone, "phone", "", "customer phone")
		fs.StringVar(&details.Address, "address", "", "delivery address")
		if err := fs.Parse(args); err != nil {
			return err
		}
		order, err := placeOrder(ctx, log, client, *restaurantID, *items, details)
		if err != nil {
			return err
		}
		printOrder(out, order)

	case "get":
		id := fs.Int("id", 0, "order id")
		if err := fs.Parse(args); err != nil {
			return err
		}
		order, err := client.Order(ctx, *id)
		if err != nil {
			return err
		}
		printOrder(out, order)

	case "status":
		id := fs.Int("id", 0, "order id")
		status := fs.String("set", "", "new status")
		if err := fs.Parse(args); err != nil {
			return err
		}
		order, err := client.UpdateStatus(ctx, *id, *status)
		if err != nil {
			return err
		}
		printOrder(out, order)

	case "health":
		if err := client.Health(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "ok")

	default:
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}

// parseItems reads "101:2,104:1". A bare id means a quantity of one.
func parseItems(s string) (map[int]int, []int, error) {
	quantities := map[int]int{}
	var order []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		idStr, qtyStr, found := strings.Cut(part, ":")
		id, err := strconv.Atoi(idStr)
		if err != nil {
			return nil, nil, fmt.Errorf("bad item %q", part)
		}
		qty := 1
		if found {
			if qty, err = strconv.Atoi(qtyStr); err != nil || qty <= 0 {
				return nil, nil, fmt.Errorf("bad quantity in %q", part)
			}
		}
		if _, seen := quantities[id]; !seen {
			order = append(order, id)
		}
		quantities[id] += qty
	}
	if len(order) == 0 {
		return nil, nil, errors.New("no items given")
	}
	return quantities, order, nil
}

func placeOrder(ctx context.Context, log logrus.FieldLogger, client *api.Client, restaurantID int, items string, details cart.Details) (api.Order, error) {
	quantities, ids, err := parseItems(items)
	if err != nil {
		return api.Order{}, err
	}

	rest, menu, err := client.Menu(ctx, restaurantID)
	if err != nil {
		return api.Order{}, err
	}
	byID := make(map[int]api.MenuItem, len(menu))
	for _, item := range menu {
		byID[item.ID] = item
	}

	c := cart.New(rest)
	for _, id := range ids {
		item, ok := byID[id]
		if !ok {
			return api.Order{}, fmt.Errorf("item %d is not on the menu of %s", id, rest.Name)
		}
		for i := 0; i < quantities[id]; i++ {
			if err := c.Add(item); err != nil {
				return api.Order{}, err
			}
		}
	}

	req, err := c.Checkout(details)
	if err != nil {
		return api.Order{}, err
	}
	log.WithFields(logrus.Fields{
		"restaurant": rest.Name,
		"items":      c.Count(),
		"total":      req.Total.String(),
	}).Debug("placing order")

	order, err := client.PlaceOrder(ctx, req)
	if err != nil {
		return api.Order{}, err
	}
	c.Clear()
	return order, nil
}

func printRestaurants(out io.Writer, restaurants []api.Restaurant) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCUISINE\tRATING\tDELIVERY\tFEE\tMIN ORDER")
	for _, r := range restaurants {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%s\t%s\t%s\n", r.ID, r.Name, r.Cuisine, r.Rating, r.DeliveryTime, r.DeliveryFee, r.MinOrder)
	}
	tw.Flush()
}

func printOrder(out io.Writer, o api.Order) {
	fmt.Fprintf(out, "Order #%d  status: %s\n", o.ID, o.Status)
	for _, line := range o.Items {
		fmt.Fprintf(out, "  %dx %s  %s\n", line.Quantity, line.Name, line.Price.Mul(line.Quantity))
	}
	fmt.Fprintf(out, "Subtotal %s  Delivery %s  Total %s\n", o.Subtotal, o.DeliveryFee, o.Total)
	if !o.EstimatedDelivery.IsZero() {
		fmt.Fprintf(out, "Estimated delivery %s\n", o.EstimatedDelivery.Local().Format(time.Kitchen))
	}
}
