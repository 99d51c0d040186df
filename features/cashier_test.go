package features

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"go.uber.org/zap"

	"github.com/Tiliavir/mvw-cashier-app/internal/cart"
	"github.com/Tiliavir/mvw-cashier-app/internal/events"
	"github.com/Tiliavir/mvw-cashier-app/internal/kv"
	"github.com/Tiliavir/mvw-cashier-app/internal/models"
	"github.com/Tiliavir/mvw-cashier-app/internal/money"
	"github.com/Tiliavir/mvw-cashier-app/internal/register"
	"github.com/Tiliavir/mvw-cashier-app/internal/store"
)

type cashierTestContext struct {
	session *register.Session
	eventID string
	itemIDs map[string]string
	quote   cart.Quote
	err     error
}

func (c *cashierTestContext) reset() {
	st := store.New(kv.NewMemory(), "", zap.NewNop())
	c.session = register.NewSession(context.Background(), st, zap.NewNop(), register.Options{VerifyTotals: true})
	c.eventID = ""
	c.itemIDs = make(map[string]string)
	c.quote = cart.Quote{}
	c.err = nil
}

func (c *cashierTestContext) event() (models.Event, error) {
	return c.session.Event(c.eventID)
}

func (c *cashierTestContext) anEvent(name string) error {
	event, err := c.session.CreateEvent(context.Background(), name, nil)
	if err != nil {
		return err
	}
	c.eventID = event.ID
	return nil
}

func (c *cashierTestContext) theItemPriced(name, price string) error {
	item, err := c.session.AddItem(context.Background(), c.eventID, name, price, "")
	if err != nil {
		return err
	}
	c.itemIDs[name] = item.ID
	return nil
}

func (c *cashierTestContext) iSelectTimes(name string, times int) error {
	id, ok := c.itemIDs[name]
	if !ok {
		return fmt.Errorf("unknown item %q", name)
	}
	for i := 0; i < times; i++ {
		if _, err := c.session.AddToCart(id); err != nil {
			return err
		}
	}
	return nil
}

func (c *cashierTestContext) theCustomerPays(received string) error {
	quote, err := c.session.Quote(money.Parse(received), nil)
	if err != nil {
		return err
	}
	c.quote = quote
	return nil
}

func (c *cashierTestContext) theCustomerPaysWithATipOf(received, tip string) error {
	manualTip := money.Parse(tip)
	quote, err := c.session.Quote(money.Parse(received), &manualTip)
	if err != nil {
		return err
	}
	c.quote = quote
	return nil
}

func (c *cashierTestContext) iFinalizeTheSalePaying(received string) error {
	_, c.quote, c.err = c.session.Finalize(context.Background(), money.Parse(received), nil)
	return nil
}

func (c *cashierTestContext) iCloseTheEvent() error {
	_, err := c.session.CloseEvent(context.Background(), c.eventID)
	return err
}

func expectAmount(what string, got money.Amount, want string) error {
	if got != money.Parse(want) {
		return fmt.Errorf("expected %s %s, got %s", what, want, got)
	}
	return nil
}

func (c *cashierTestContext) theCartTotalIs(want string) error {
	quote, err := c.session.Quote(money.Zero, nil)
	if err != nil {
		return err
	}
	return expectAmount("total", quote.Total, want)
}

func (c *cashierTestContext) theChangeIs(want string) error {
	return expectAmount("change", c.quote.Change, want)
}

func (c *cashierTestContext) theTipIs(want string) error {
	return expectAmount("tip", c.quote.Tip, want)
}

func (c *cashierTestContext) theEventHasTransactions(count int) error {
	event, err := c.event()
	if err != nil {
		return err
	}
	if len(event.Transactions) != count {
		return fmt.Errorf("expected %d transactions, got %d", count, len(event.Transactions))
	}
	return nil
}

func (c *cashierTestContext) theEventRevenueIs(want string) error {
	event, err := c.event()
	if err != nil {
		return err
	}
	return expectAmount("revenue", events.Totals(event).Revenue, want)
}

func (c *cashierTestContext) theCartIsEmpty() error {
	if c.session.Cart().HasItems() {
		return fmt.Errorf("expected an empty cart, got %v", c.session.Cart())
	}
	return nil
}

func (c *cashierTestContext) theSaleIsRefusedBecauseTheCartIsEmpty() error {
	if !errors.Is(c.err, models.ErrEmptyCart) {
		return fmt.Errorf("expected %v, got %v", models.ErrEmptyCart, c.err)
	}
	return nil
}

func (c *cashierTestContext) noEventIsActive() error {
	if id := c.session.State().ActiveEventID; id != nil {
		return fmt.Errorf("expected no active event, got %s", *id)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cashierTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an event "([^"]*)"$`, tc.anEvent)
	ctx.Step(`^the item "([^"]*)" priced "([^"]*)"$`, tc.theItemPriced)

	// When steps
	ctx.Step(`^I select "([^"]*)" (\d+) times?$`, tc.iSelectTimes)
	ctx.Step(`^the customer pays "([^"]*)"$`, tc.theCustomerPays)
	ctx.Step(`^the customer pays "([^"]*)" with a tip of "([^"]*)"$`, tc.theCustomerPaysWithATipOf)
	ctx.Step(`^I finalize the sale paying "([^"]*)"$`, tc.iFinalizeTheSalePaying)
	ctx.Step(`^I close the event$`, tc.iCloseTheEvent)

	// Then steps
	ctx.Step(`^the cart total is "([^"]*)"$`, tc.theCartTotalIs)
	ctx.Step(`^the change is "([^"]*)"$`, tc.theChangeIs)
	ctx.Step(`^the tip is "([^"]*)"$`, tc.theTipIs)
	ctx.Step(`^the event has (\d+) transactions?$`, tc.theEventHasTransactions)
	ctx.Step(`^the event revenue is "([^"]*)"$`, tc.theEventRevenueIs)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^the sale is refused because the cart is empty$`, tc.theSaleIsRefusedBecauseTheCartIsEmpty)
	ctx.Step(`^no event is active$`, tc.noEventIsActive)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"cashier.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
