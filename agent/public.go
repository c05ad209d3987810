package agent

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/nadhif/uangku"
	"github.com/nadhif/uangku/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// DataDir is the ledger directory the bookkeeper reads from. The CLI sets it
// from its -data flag before starting a session.
var DataDir = "."

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and of solving the user's request.

			Learn about the experts' skills from the Tools and ask them questions.
			They are at your service and 100% dedicated to you, and they keep context of your previous questions.

			The user is here to understand his personal finances: account balances, spending,
			investments and money he lent out. Amounts are in Indonesian Rupiah unless stated otherwise.
			The user may mix Indonesian and English terms; figure out what he meant.

			Devise a plan of questions to ask each expert and come up with the best response to the user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewBookkeeper returns the expert in charge of reading the user's ledger.
func NewBookkeeper() *Expert {

	lib := []Function{AccountsFunc, TransactionsFunc, SummaryFunc}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper. He is in charge of reading the user's ledger.
		He can list accounts and their balances, list transactions, and compute
		a summary of the user's finances.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's personal ledger.
				You know how to use the Tools to extract relevant information about the
				user's accounts, transactions, investments and receivables.
				You are part of a team of experts; yours is everything recorded in the ledger.
				They might ask you questions in approximative language, figure out what they meant.

				Use the available tools to get information about the user's ledger
				  - accounts and balances
				  - the transaction log
				  - a financial summary
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func errResponse(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func okResponse(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

// loadLedger decodes the ledger from the data directory. A missing directory
// is an empty ledger.
func loadLedger() (*uangku.Ledger, error) {
	ledger, err := uangku.DecodeLedger(&uangku.DirStore{Dir: DataDir})
	if err != nil {
		return nil, fmt.Errorf("could not load ledger from %q: %w", DataDir, err)
	}
	return ledger, nil
}

var AccountsFunc = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Accounts",
		Description: `Accounts lists every account in the ledger with its current balance,
		plus the total across all accounts.`,
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted table of accounts with name, type, balance and ID.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		ledger, err := loadLedger()
		if err != nil {
			return errResponse(id, "Accounts", err)
		}
		return okResponse(id, "Accounts", renderer.Accounts(slices.Collect(ledger.Accounts())))
	},
}

var TransactionsFunc = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Transactions",
		Description: `Transactions lists the transaction log, newest first.
		Optionally filtered to the transactions touching one account.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"account": {
					Type:        genai.TypeString,
					Description: "Optional account name to filter on. Case-insensitive.",
				},
			},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted table of transactions with date, type, account, amount, category and description.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		ledger, err := loadLedger()
		if err != nil {
			return errResponse(id, "Transactions", err)
		}

		filters := []func(uangku.Transaction) bool{uangku.AcceptAll}
		if name, ok := args["account"].(string); ok && name != "" {
			var accountID string
			for a := range ledger.Accounts() {
				if strings.EqualFold(a.Name, name) {
					accountID = a.ID
					break
				}
			}
			if accountID == "" {
				return errResponse(id, "Transactions", fmt.Errorf("no account named %q", name))
			}
			filters = []func(uangku.Transaction) bool{uangku.ByAccount(accountID)}
		}

		var txs []uangku.Transaction
		for _, tx := range ledger.Transactions(filters...) {
			txs = append(txs, tx)
		}
		accountName := func(id string) string {
			if a := ledger.Account(id); a != nil {
				return a.Name
			}
			return ""
		}
		return okResponse(id, "Transactions", renderer.Transactions(txs, accountName))
	},
}

var SummaryFunc = &Func{
	Decl: &genai.FunctionDeclaration{
		Name: "Summary",
		Description: `Summary computes the financial summary on a given day: net cash,
		month-to-date income and expense, invested capital and its current value,
		and outstanding receivables.`,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"date": {
					Type:        genai.TypeString,
					Description: "The date on which to compute the summary, formatted YYYY-MM-DD. Today is the default.",
				},
			},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "A markdown-formatted summary of the user's finances on that day.",
		},
	},
	Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
		date, err := parseDate(args)
		if err != nil {
			return errResponse(id, "Summary", err)
		}
		ledger, err := loadLedger()
		if err != nil {
			return errResponse(id, "Summary", err)
		}
		return okResponse(id, "Summary", renderer.Summary(uangku.NewSummary(ledger, date)))
	},
}

func parseDate(args map[string]any) (uangku.Date, error) {
	idate, hasDate := args["date"]
	if !hasDate {
		return uangku.Today(), nil
	}
	sdate, ok := idate.(string)
	if !ok {
		return uangku.Today(), fmt.Errorf("argument 'date' is not a string as expected but %T", idate)
	}

	date, err := uangku.ParseDate(sdate)
	if err != nil {
		return uangku.Today(), fmt.Errorf("argument 'date' must be a valid YYYY-MM-DD date, got %q", sdate)
	}
	return date, nil
}
