package scenario

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/optakt/accrual/b"
)

const (
	OpMint     = "mint"
	OpStake    = "stake"
	OpCooldown = "cooldown"
	OpUnstake  = "unstake"
	OpLock     = "lock"
	OpUnlock   = "unlock"
	OpKick     = "kick"
	OpTransfer = "transfer"
	OpClaim    = "claim"
	OpUpdate   = "update"
)

var header = []string{"offset", "op", "user", "amount", "arg"}

// Action is one scenario line. Offset counts seconds after genesis. Arg is a
// lock duration in seconds, or the counterparty address of an unstake, kick
// or transfer.
type Action struct {
	Offset uint64
	Op     string
	User   common.Address
	Amount *uint256.Int
	Arg    string
}

// Load reads the scenario file and returns its actions ordered by offset.
// Actions sharing an offset keep their file order.
func Load(file string) ([]Action, error) {

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("could not read scenario file: %w", err)
	}

	csvr := csv.NewReader(bytes.NewReader(data))
	csvr.FieldsPerRecord = len(header)
	csvr.TrimLeadingSpace = true
	csvr.Comment = '#'
	records, err := csvr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read scenario records: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty scenario file")
	}
	if strings.Join(records[0], ",") != strings.Join(header, ",") {
		return nil, fmt.Errorf("invalid scenario header %q", strings.Join(records[0], ","))
	}

	actions := make([]Action, 0, len(records)-1)
	for i, record := range records[1:] {
		action, err := parse(record)
		if err != nil {
			return nil, fmt.Errorf("could not parse scenario line %d: %w", i+2, err)
		}
		actions = append(actions, action)
	}

	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].Offset < actions[j].Offset
	})

	return actions, nil
}

func parse(record []string) (Action, error) {

	offset, err := strconv.ParseUint(record[0], 10, 64)
	if err != nil {
		return Action{}, fmt.Errorf("could not parse offset: %w", err)
	}

	op := strings.ToLower(record[1])
	switch op {
	case OpMint, OpStake, OpCooldown, OpUnstake, OpLock, OpUnlock, OpKick, OpTransfer, OpClaim, OpUpdate:
	default:
		return Action{}, fmt.Errorf("unknown operation %q", record[1])
	}

	var user common.Address
	if record[2] != "" {
		user, err = address(record[2])
		if err != nil {
			return Action{}, err
		}
	}

	amount := new(uint256.Int)
	switch {
	case record[3] == "":
	case strings.HasPrefix(record[3], "0x"):
		amount, err = b.FromHex(record[3])
	default:
		amount, err = b.FromDecimal(record[3], 18)
	}
	if err != nil {
		return Action{}, fmt.Errorf("could not parse amount: %w", err)
	}

	action := Action{
		Offset: offset,
		Op:     op,
		User:   user,
		Amount: amount,
		Arg:    record[4],
	}

	return action, nil
}

func address(value string) (common.Address, error) {
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("invalid address %q", value)
	}
	return common.HexToAddress(value), nil
}
