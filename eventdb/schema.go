// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

// proposalID columns hold the 32-byte big-endian id, as in the log topic.
const proposalTableSchema = `
create table if not exists proposal_event (
	blockNumber integer,
	logIndex integer,
	txHash blob(32),
	proposalID blob(32),
	proposer blob(20),
	title text,
	artist text,
	songLink text,
	primary key (blockNumber, logIndex)
);

CREATE INDEX if not exists proposalProposerIndex on proposal_event(proposer);
`

const voteTableSchema = `
create table if not exists vote_event (
	blockNumber integer,
	logIndex integer,
	txHash blob(32),
	proposalID blob(32),
	voter blob(20),
	primary key (blockNumber, logIndex)
);

CREATE INDEX if not exists voteProposalIndex on vote_event(proposalID);
CREATE INDEX if not exists voteVoterIndex on vote_event(voter);
`

const cursorTableSchema = `
create table if not exists sync_cursor (
	name text primary key,
	value integer
);
`
