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

/*Package segment turns a per-SNP parent labeling into runs attributed to one
  parent, and aggregates them.

  Smooth suppresses short parent switches, Build materializes the runs as
  intervals in the P1, P2 and R coordinate systems, and ReceptorSummary and
  DonorSummary total the interval lengths per parent.  All functions are pure.
*/
package segment
