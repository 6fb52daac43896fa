package ledger

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// RPCReader implements Reader against a Solana JSON-RPC endpoint.
type RPCReader struct {
	client     *rpc.Client
	commitment rpc.CommitmentType
}

// NewRPCReader builds a reader for the given RPC endpoint, querying at
// confirmed commitment.
func NewRPCReader(endpoint string) *RPCReader {
	return &RPCReader{
		client:     rpc.New(endpoint),
		commitment: rpc.CommitmentConfirmed,
	}
}

// FetchAccount implements Reader.
func (r *RPCReader) FetchAccount(ctx context.Context, address string) (*Account, error) {
	pk, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("parse address %s: %w", address, err)
	}
	out, err := r.client.GetAccountInfoWithOpts(ctx, pk, &rpc.GetAccountInfoOpts{
		Commitment: r.commitment,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", address, ErrAccountNotFound)
		}
		return nil, fmt.Errorf("get account info %s: %w", address, err)
	}
	if out == nil || out.Value == nil {
		return nil, fmt.Errorf("%s: %w", address, ErrAccountNotFound)
	}
	return &Account{
		Address: address,
		Owner:   out.Value.Owner.String(),
		Data:    out.Value.Data.GetBinary(),
	}, nil
}

// FetchTokenBalance implements Reader.
func (r *RPCReader) FetchTokenBalance(ctx context.Context, vault string) (uint64, error) {
	pk, err := solana.PublicKeyFromBase58(vault)
	if err != nil {
		return 0, fmt.Errorf("parse vault %s: %w", vault, err)
	}
	out, err := r.client.GetTokenAccountBalance(ctx, pk, r.commitment)
	if err != nil {
		return 0, fmt.Errorf("get token balance %s: %w", vault, err)
	}
	if out == nil || out.Value == nil {
		return 0, fmt.Errorf("empty balance response for vault %s", vault)
	}
	amount, err := strconv.ParseUint(out.Value.Amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse balance %q for vault %s: %w", out.Value.Amount, vault, err)
	}
	return amount, nil
}

// FetchMintDecimals implements Reader.
func (r *RPCReader) FetchMintDecimals(ctx context.Context, mint string) (uint8, error) {
	pk, err := solana.PublicKeyFromBase58(mint)
	if err != nil {
		return 0, fmt.Errorf("parse mint %s: %w", mint, err)
	}
	out, err := r.client.GetTokenSupply(ctx, pk, r.commitment)
	if err != nil {
		return 0, fmt.Errorf("get token supply %s: %w", mint, err)
	}
	if out == nil || out.Value == nil {
		return 0, fmt.Errorf("empty supply response for mint %s", mint)
	}
	return out.Value.Decimals, nil
}
