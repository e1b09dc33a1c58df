package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/localswap/internal/api"
)

var transactionOptions = []api.Option{
	{Value: "vendo", Label: "Vendita"},
	{Value: "scambio", Label: "Scambio"},
	{Value: "presto", Label: "Prestito"},
}

// Profile shows a user's reputation; without arguments the caller's own.
func (a *App) Profile(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	userID := ""
	if len(args) > 0 {
		userID = args[0]
	}
	p, err := a.profiles.Get(ctx, userID)
	if err != nil {
		return a.fail(ctx, err)
	}
	a.printf("%s\n", p.DisplayName)
	if p.Username != "" {
		a.printf("  username:    @%s\n", p.Username)
	}
	a.printf("  reputation:  %.1f (%s)\n", p.ReputationScore, p.ReputationLabel)
	a.printf("  swaps:       %d completed of %d\n", p.SuccessfulTransactions, p.TotalTransactions)
	return nil
}

// Rate asks for the details of a finished swap and rates the other party.
func (a *App) Rate(ctx context.Context, _ []string) error {
	if !a.requireLogin() {
		return nil
	}

	userID, err := GetSimpleText(a.reader, "User to rate", a.out)
	if err != nil || userID == "" {
		a.println("Cancelled")
		return nil
	}

	var rating int
	for {
		s, err := GetSimpleText(a.reader, "Rating 1-5", a.out)
		if err != nil || s == "" {
			a.println("Cancelled")
			return nil
		}
		if rating, err = strconv.Atoi(s); err == nil && rating >= 1 && rating <= 5 {
			break
		}
		a.println("Enter a number between 1 and 5")
	}

	tx, err := GetChoice(a.reader, "Transaction", transactionOptions, a.out)
	if err != nil {
		a.println("Cancelled")
		return nil
	}
	comment, err := GetSimpleText(a.reader, "Comment (optional)", a.out)
	if err != nil {
		return a.fail(ctx, err)
	}
	itemID, err := GetSimpleText(a.reader, "Item id (optional)", a.out)
	if err != nil {
		return a.fail(ctx, err)
	}

	res, err := a.profiles.Rate(ctx, &api.RateRequest{
		RatedUserID:     userID,
		Rating:          rating,
		Comment:         comment,
		TransactionType: tx,
		ItemID:          itemID,
	})
	if err != nil {
		return a.fail(ctx, err)
	}
	a.printf("Thanks! %s now has %.1f\n", a.chat.DisplayName(ctx, userID), res.ReputationScore)
	return nil
}
