// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boc

import (
	"bytes"
	"testing"

	"github.com/bureau-foundation/boc/lib/testutil"
)

func TestKnownContainers(t *testing.T) {
	tests := []struct {
		name    string
		base64  string
		hex     string
		options SerializeOptions
		cells   []string // bit text of each cell, root first
	}{
		{
			name:    "single cell",
			base64:  "te6cckEBAQEABwAACQHW80Vgb11ZoQ==",
			hex:     "b5ee9c72 41 01 01 01 00 07 00 0009 01d6f34560 6f5d59a1",
			options: SerializeOptions{Index: false, CRC32C: true},
			cells:   []string{"01D6F3456_"},
		},
		{
			name:    "two cells",
			base64:  "te6cckEBAgEADgABCQHW80VgAQAHdWtbOOjL63Q=",
			hex:     "b5ee9c72 41 01 02 01 00 0e 00 0109 01d6f34560 01 0007 756b5b38 e8cbeb74",
			options: SerializeOptions{Index: false, CRC32C: true},
			cells:   []string{"01D6F3456_", "756B5B3"},
		},
		{
			name:    "two cells with index",
			base64:  "te6ccsEBAgEADgAIDgEJAdbzRWABAAd1a1s4yDmZeQ==",
			hex:     "b5ee9c72 c1 01 02 01 00 0e 00 080e 0109 01d6f34560 01 0007 756b5b38 c8399979",
			options: SerializeOptions{Index: true, CRC32C: true},
			cells:   []string{"01D6F3456_", "756B5B3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := testutil.DecodeBase64(t, tt.base64)
			if want := testutil.DecodeHex(t, tt.hex); !bytes.Equal(data, want) {
				t.Fatalf("fixture mismatch: base64 decodes to %x, hex is %x", data, want)
			}

			root := mustDeserializeOne(t, data)
			cell := root
			for i, text := range tt.cells {
				if got := cell.Bits().String(); got != text {
					t.Errorf("cell %d bits = %s, want %s", i, got, text)
				}
				if i < len(tt.cells)-1 {
					if cell.RefCount() != 1 {
						t.Fatalf("cell %d has %d refs, want 1", i, cell.RefCount())
					}
					cell = cell.Ref(0)
				} else if cell.RefCount() != 0 {
					t.Errorf("last cell has %d refs, want 0", cell.RefCount())
				}
			}

			encoded := mustSerialize(t, root, tt.options)
			if !bytes.Equal(encoded, data) {
				t.Errorf("re-serialized\n got %x\nwant %x", encoded, data)
			}
			if again := mustDeserializeOne(t, encoded); !again.Equal(root) {
				t.Error("re-serialized container decodes to a different graph")
			}
		})
	}
}

func TestSingleCellBitLength(t *testing.T) {
	root := mustDeserializeOne(t, testutil.DecodeBase64(t, "te6cckEBAQEABwAACQHW80Vgb11ZoQ=="))
	if root.RefCount() != 0 {
		t.Errorf("RefCount() = %d, want 0", root.RefCount())
	}
	if root.Bits().Len() != 34 {
		t.Errorf("Bits().Len() = %d, want 34", root.Bits().Len())
	}
}

// Wallet contract code containers: one unpadded cell each.
var walletCode = []string{
	"B5EE9C72410101010044000084FF0020DDA4F260810200D71820D70B1FED44D0D31FD3FFD15112BAF2A122F901541044F910F2A2F80001D31F3120D74A96D307D402FB00DED1A4C8CB1FCBFFC9ED5441FDF089",
	"B5EE9C724101010100530000A2FF0020DD2082014C97BA9730ED44D0D70B1FE0A4F260810200D71820D70B1FED44D0D31FD3FFD15112BAF2A122F901541044F910F2A2F80001D31F3120D74A96D307D402FB00DED1A4C8CB1FCBFFC9ED54D0E2786F",
	"B5EE9C7241010101005F0000BAFF0020DD2082014C97BA218201339CBAB19C71B0ED44D0D31FD70BFFE304E0A4F260810200D71820D70B1FED44D0D31FD3FFD15112BAF2A122F901541044F910F2A2F80001D31F3120D74A96D307D402FB00DED1A4C8CB1FCBFFC9ED54B5B86E42",
	"B5EE9C724101010100570000AAFF0020DD2082014C97BA9730ED44D0D70B1FE0A4F2608308D71820D31FD31F01F823BBF263ED44D0D31FD3FFD15131BAF2A103F901541042F910F2A2F800029320D74A96D307D402FB00E8D1A4C8CB1FCBFFC9ED54A1370BB6",
	"B5EE9C724101010100630000C2FF0020DD2082014C97BA218201339CBAB19C71B0ED44D0D31FD70BFFE304E0A4F2608308D71820D31FD31F01F823BBF263ED44D0D31FD3FFD15131BAF2A103F901541042F910F2A2F800029320D74A96D307D402FB00E8D1A4C8CB1FCBFFC9ED54044CD7A1",
	"B5EE9C724101010100620000C0FF0020DD2082014C97BA9730ED44D0D70B1FE0A4F2608308D71820D31FD31FD31FF82313BBF263ED44D0D31FD31FD3FFD15132BAF2A15144BAF2A204F901541055F910F2A3F8009320D74A96D307D402FB00E8D101A4C8CB1FCB1FCBFFC9ED543FBE6EE0",
	"B5EE9C724101010100710000DEFF0020DD2082014C97BA218201339CBAB19F71B0ED44D0D31FD31F31D70BFFE304E0A4F2608308D71820D31FD31FD31FF82313BBF263ED44D0D31FD31FD3FFD15132BAF2A15144BAF2A204F901541055F910F2A3F8009320D74A96D307D402FB00E8D101A4C8CB1FCB1FCBFFC9ED5410BD6DAD",
}

func TestWalletCode(t *testing.T) {
	for i, text := range walletCode {
		data := testutil.DecodeHex(t, text)
		root := mustDeserializeOne(t, data)
		if root.RefCount() != 0 || root.Bits().Len()%8 != 0 {
			t.Errorf("wallet %d: %d bits, %d refs", i, root.Bits().Len(), root.RefCount())
		}
		encoded := mustSerialize(t, root, SerializeOptions{CRC32C: true})
		if !bytes.Equal(encoded, data) {
			t.Errorf("wallet %d re-serialized\n got %x\nwant %x", i, encoded, data)
		}
	}
}
