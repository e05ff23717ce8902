// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
bio-origin identifies the parental origin of the regions of a recombinant
genome R built from two parents P1 and P2.

Its input is a SNP table exported by MAUVE, in two versions: one sorted by P1
positions and one sorted by P2 positions.  Each SNP is attributed to the
parent whose allele R carries, short switches of parent are smoothed away,
and the remaining runs are reported as intervals in the P1, P2 and R
coordinate systems together with per-parent totals.  The parent with the
smaller footprint is the donor.

Sample usage:

  bio-origin run -out results snps_sorted_p1.xlsx snps_sorted_p2.xlsx

writes one report per orientation into results/ and logs which parent is the
receptor.

  bio-origin segment -receptor P2 snps_sorted_p2.tsv

prints the intervals of a single orientation, and

  bio-origin locate snps_sorted_p1.tsv R:120000-135000

prints the intervals overlapping a range of R coordinates.
*/
package main
