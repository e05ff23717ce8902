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

/*Package snpcall holds the SNP-call data model shared by the segmentation
  pipeline, and attributes each call to one of the two parental genomes.

  A call carries a three-allele pattern (P1, P2, R) and one position per
  genome.  Calls whose recombinant allele matches exactly one parent, and which
  are aligned in both parents, become Sites.
*/
package snpcall
