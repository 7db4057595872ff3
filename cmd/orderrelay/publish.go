package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/orderrelay/pkg/notification"
	"github.com/dmitrymomot/orderrelay/pkg/queue"
	"github.com/dmitrymomot/orderrelay/pkg/redis"
	"github.com/dmitrymomot/orderrelay/pkg/router"
)

type publishFlags struct {
	eventType string
	order     string
	name      string
	email     string
	items     []string
}

func newPublishCmd() *cobra.Command {
	var f publishFlags

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Append an order event to the event stream",
		Example: "  orderrelay publish --type order.ready --order ORD-1 --name Ana \\\n" +
			"    --email ana@example.com --item Taco:2 --item Horchata",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			payload, err := f.payload()
			if err != nil {
				return err
			}

			cfg, log, err := setup()
			if err != nil {
				return err
			}

			client, err := redis.Connect(cmd.Context(), cfg.Redis)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			pub, err := queue.NewPublisher(client, cfg.Queue, queue.WithPublisherLogger(log))
			if err != nil {
				return err
			}
			id, err := pub.Publish(cmd.Context(), payload)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
			return err
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.eventType, "type", "", "event type, e.g. order.ready")
	fl.StringVar(&f.order, "order", "", "order number")
	fl.StringVar(&f.name, "name", "", "customer name")
	fl.StringVar(&f.email, "email", "", "customer email")
	fl.StringArrayVar(&f.items, "item", nil, "order line as name[:quantity], repeatable")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

// payload builds the event JSON the consumer expects.
func (f publishFlags) payload() ([]byte, error) {
	ev := router.Event{
		Type: notification.EventType(f.eventType),
		Data: router.Data{
			OrderNumber:   f.order,
			CustomerName:  f.name,
			CustomerEmail: f.email,
		},
	}
	if !ev.Type.Known() {
		return nil, fmt.Errorf("unknown event type %q", f.eventType)
	}

	for _, raw := range f.items {
		item, err := parseItem(raw)
		if err != nil {
			return nil, err
		}
		ev.Data.Items = append(ev.Data.Items, item)
	}
	return json.Marshal(ev)
}

func parseItem(raw string) (router.Item, error) {
	name, qty, found := strings.Cut(raw, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return router.Item{}, fmt.Errorf("item %q: empty name", raw)
	}
	if !found {
		return router.Item{Name: name, Quantity: 1}, nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(qty))
	if err != nil || n <= 0 {
		return router.Item{}, fmt.Errorf("item %q: quantity must be a positive integer", raw)
	}
	return router.Item{Name: name, Quantity: n}, nil
}
