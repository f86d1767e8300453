// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// BulkPull, BulkPush and BulkPullAccount reserve their message types
// on the wire (see MessageBulkPull et al.) but carry no payload codec
// in this core; bulk-pull/push bootstrap streams are skeletons only.
// A future bootstrap implementation would add request/response types
// here following the same Len/Serialize/Deserialize shape as every
// other message in this package.
